package render

const listTemplate = `{{define "list"}}{{range .}}
<div class="product-card" data-id="{{.ID}}" data-tipo="{{.TipoSlug}}">
  <img src="{{.Image}}" alt="{{.Nome}}">
  <h3>{{.Nome}}</h3>
  <p class="price">{{.Price}}</p>
  <p class="stock">Estoque: <span id="stock-{{.ID}}">{{.Estoque}}</span></p>
  <form class="product-actions" method="post" action="/products/{{.ID}}/actions" data-id="{{.ID}}">
    <input type="hidden" name="displayed" value="{{.Estoque}}">
    <div class="stock-controls">
      <button type="submit" name="action" value="{{control "decrease"}}" class="{{control "decrease"}}" data-id="{{.ID}}">-</button>
      <button type="submit" name="action" value="{{control "increase"}}" class="{{control "increase"}}" data-id="{{.ID}}">+</button>
    </div>
    <p class="type">Tipo: {{.Tipo}}</p>
    <button type="submit" name="action" value="{{control "remove"}}" class="{{control "remove"}}" data-id="{{.ID}}">Remover</button>
  </form>
</div>
{{end}}{{end}}`

const pageTemplate = `<!doctype html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 24px; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; background: #f7f9fc; color: #1a1f36; }
    h1 { font-size: 22px; }
    #search-bar { width: 100%; max-width: 480px; padding: 8px; margin-bottom: 16px; }
    #product-form { display: grid; gap: 8px; max-width: 480px; margin-bottom: 24px; }
    .product-list { display: flex; flex-wrap: wrap; gap: 16px; }
    .product-card { background: #fff; width: 220px; padding: 12px; border-radius: 4px; box-shadow: 0 1px 3px rgba(0,0,0,.06); }
    .product-card img { width: 100%; height: 140px; object-fit: cover; }
    .price { font-weight: 600; }
    .stock-controls { display: flex; gap: 8px; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>

  <input type="text" id="search-bar" placeholder="Pesquisar produtos" value="{{.Query}}" autocomplete="off">

  <form id="product-form" method="post" action="/products" enctype="multipart/form-data">
    <input type="text" id="product-name" name="nome" placeholder="Nome">
    <textarea id="product-description" name="descricao" placeholder="Descrição"></textarea>
    <input type="number" id="product-price" name="preco" step="0.01" placeholder="Preço">
    <input type="text" id="product-type" name="tipo" placeholder="Tipo">
    <input type="number" id="product-stock" name="estoque" placeholder="Estoque">
    <input type="file" id="product-image" name="imagem" accept="image/*">
    <button type="submit">Adicionar produto</button>
  </form>

  <div class="product-list">{{template "list" .Cards}}</div>

  <script>
    (function () {
      var list = document.querySelector('.product-list');
      var seq = 0;
      document.getElementById('search-bar').addEventListener('input', function (event) {
        var mine = ++seq;
        fetch('/products?q=' + encodeURIComponent(event.target.value))
          .then(function (resp) { return resp.text(); })
          .then(function (html) { if (mine === seq) { list.innerHTML = html; } });
      });
      list.addEventListener('submit', function (event) {
        var form = event.target;
        var counter = document.getElementById('stock-' + form.getAttribute('data-id'));
        if (counter && form.elements.displayed) {
          form.elements.displayed.value = counter.textContent.trim();
        }
      });
    })();
  </script>
  {{if .Notice}}<script>alert({{.Notice}});</script>{{end}}
</body>
</html>
`
