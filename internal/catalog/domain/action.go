package domain

import (
	"strconv"
	"strings"
)

// Action is a card control.
type Action int

const (
	ActionUnknown Action = iota
	ActionRemove
	ActionIncreaseStock
	ActionDecreaseStock
)

var actionClasses = map[Action]string{
	ActionRemove:        "remove-product",
	ActionIncreaseStock: "increase-stock",
	ActionDecreaseStock: "decrease-stock",
}

// Class is the markup class carried by the control.
func (a Action) Class() string {
	return actionClasses[a]
}

func (a Action) String() string {
	if c, ok := actionClasses[a]; ok {
		return c
	}
	return "unknown"
}

func ParseAction(class string) Action {
	class = strings.ToLower(strings.TrimSpace(class))
	for action, c := range actionClasses {
		if c == class {
			return action
		}
	}
	return ActionUnknown
}

// ProductID identifies the product a control targets.
type ProductID int64

func ParseProductID(raw string) (ProductID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid("id", ErrInvalidID)
	}
	return ProductID(id), nil
}

func (id ProductID) Int64() int64 { return int64(id) }

func (id ProductID) String() string { return strconv.FormatInt(int64(id), 10) }
