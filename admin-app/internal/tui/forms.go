package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tea-estate/internal/domain"
	"tea-estate/internal/termui"
)

func loginForm(username string) termui.Form {
	return termui.NewForm("Admin Login",
		termui.Field{Label: "Username", Value: username},
		termui.Field{Label: "Password", Password: true},
	)
}

func statusForm(order domain.Order) termui.Form {
	names := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		names[i] = string(s)
	}
	return termui.NewForm(
		fmt.Sprintf("Order #%d status (%s)", order.ID, strings.Join(names, ", ")),
		termui.Field{Label: "Status", Value: string(order.Status)},
	)
}

func estimateForm(order domain.Order) termui.Form {
	return termui.NewForm(
		fmt.Sprintf("Order #%d estimated time", order.ID),
		termui.Field{Label: "Minutes", Value: strconv.Itoa(order.EstimatedTime)},
	)
}

func tableForm() termui.Form {
	return termui.NewForm("Add Table", termui.Field{Label: "Table number"})
}

// menuItemForm edits item, or starts a new one when item is nil.
func menuItemForm(item *domain.MenuItem) termui.Form {
	if item == nil {
		return termui.NewForm("Add Menu Item",
			termui.Field{Label: "Name"},
			termui.Field{Label: "Description"},
			termui.Field{Label: "Price"},
			termui.Field{Label: "Category ID"},
			termui.Field{Label: "Available", Value: "yes"},
		)
	}
	available := "yes"
	if !item.IsAvailable {
		available = "no"
	}
	return termui.NewForm("Edit Menu Item",
		termui.Field{Label: "Name", Value: item.Name},
		termui.Field{Label: "Description", Value: item.Description},
		termui.Field{Label: "Price", Value: strconv.FormatFloat(item.Price, 'f', -1, 64)},
		termui.Field{Label: "Category ID", Value: strconv.Itoa(item.CategoryID)},
		termui.Field{Label: "Available", Value: available},
	)
}

// parseMenuItem reads the fields of menuItemForm in order.
func parseMenuItem(values []string) (domain.MenuItemInput, error) {
	name, description := values[0], values[1]
	if name == "" {
		return domain.MenuItemInput{}, errors.New("Name is required")
	}
	price, err := strconv.ParseFloat(values[2], 64)
	if err != nil || price < 0 {
		return domain.MenuItemInput{}, errors.New("Price must be a number")
	}
	category, err := strconv.Atoi(values[3])
	if err != nil || category <= 0 {
		return domain.MenuItemInput{}, errors.New("Category ID must be a positive number")
	}
	var available bool
	switch strings.ToLower(values[4]) {
	case "yes", "y", "true", "1":
		available = true
	case "no", "n", "false", "0":
	default:
		return domain.MenuItemInput{}, errors.New("Available must be yes or no")
	}
	return domain.MenuItemInput{
		Name:        &name,
		Description: &description,
		Price:       &price,
		CategoryID:  &category,
		IsAvailable: &available,
	}, nil
}

func parseTableNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("Please enter a valid table number")
	}
	return n, nil
}

func parseMinutes(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("Invalid estimated time")
	}
	return n, nil
}
