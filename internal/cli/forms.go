package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focustrackHuhTheme returns a custom huh theme using the Gruvbox palette.
func focustrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(focustrackHuhTheme()).WithShowHelp(false)
}

// credentialsForm asks for a username and password. With confirm set it adds
// a repeat-password field checked against the first.
func credentialsForm(title string, username, password, confirm *string) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().Title(title),
		huh.NewInput().
			Title("Username").
			Value(username).
			Validate(validateUsername),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(validateRequired("password")),
	}
	if confirm != nil {
		fields = append(fields, huh.NewInput().
			Title("Repeat password").
			EchoMode(huh.EchoModePassword).
			Value(confirm).
			Validate(func(s string) error {
				if s != *password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}))
	}
	return themed(huh.NewGroup(fields...))
}

func categoryInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Focus category").
		Placeholder("Study / Work / Reading").
		Value(value).
		Validate(validateCategory)
}

func categoryForm(value *string) *huh.Form {
	return themed(huh.NewGroup(categoryInput(value)))
}

// pomodoroForm collects a plan as strings; parsePomodoroFields converts them.
func pomodoroForm(category, focus, brk, cycles *string) *huh.Form {
	return themed(huh.NewGroup(
		categoryInput(category),
		huh.NewInput().Title("Focus minutes").Placeholder("25").Value(focus).Validate(validatePositiveInt),
		huh.NewInput().Title("Break minutes").Placeholder("5").Value(brk).Validate(validateNonNegativeInt),
		huh.NewInput().Title("Cycles").Placeholder("4").Value(cycles).Validate(validatePositiveInt),
	))
}

func parsePomodoroFields(focus, brk, cycles string, focusDefault, breakDefault time.Duration, cyclesDefault int) (time.Duration, time.Duration, int) {
	f, b, c := focusDefault, breakDefault, cyclesDefault
	if v, err := strconv.Atoi(strings.TrimSpace(focus)); err == nil {
		f = time.Duration(v) * time.Minute
	}
	if v, err := strconv.Atoi(strings.TrimSpace(brk)); err == nil {
		b = time.Duration(v) * time.Minute
	}
	if v, err := strconv.Atoi(strings.TrimSpace(cycles)); err == nil {
		c = v
	}
	return f, b, c
}

func selectForm[T comparable](title string, options []huh.Option[T], value *T) *huh.Form {
	return themed(huh.NewGroup(
		huh.NewSelect[T]().
			Title(title).
			Options(options...).
			Value(value),
	))
}

func validateUsername(s string) error {
	if err := service.ValidateUsername(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use letters, digits, '_', '.' or '-'")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateCategory(s string) error {
	if err := repository.ValidateCategory(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("category must be non-empty and cannot contain commas")
	}
	return nil
}

// validatePositiveInt accepts empty (use default) or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter zero or a positive number")
	}
	return nil
}
