package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/saf/completers/internal/config"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Validate validates a completers configuration file
func Validate(configPath string) error {
	// If no path provided, use the user config
	if configPath == "" {
		configPath = config.Locate()
		if configPath == "" {
			return fmt.Errorf("no config file found")
		}
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	// Read file content for schema validation
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// First validate with JSON Schema
	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	// If schema validation passes, run the loader's value checks too
	if result.Valid {
		if _, err := config.Load(configPath); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, config.ValidationError{
				Field:   "config",
				Message: err.Error(),
			})
		}
	}

	if result.Valid {
		fmt.Println(validStyle.Render("✅ Configuration is valid!"))
		return nil
	}

	// Display errors
	fmt.Println(invalidStyle.Render("❌ Configuration has errors:"))
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
