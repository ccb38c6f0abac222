package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/service/directory"
)

// AppConfig represents the application taxonomy configuration: the risk
// categories shown in the register and the employee directory used for
// owner/responsible display names.
type AppConfig struct {
	Categories []Category `toml:"category"`
	Employees  []Employee `toml:"employee"`

	path string
}

// Category represents a risk category configuration
type Category struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	id := types.CategoryID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if c.Name == "" {
		return goerr.New("category name is required", goerr.V("id", c.ID))
	}
	return nil
}

// Employee represents one directory entry
type Employee struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Validate checks if the Employee is valid
func (e *Employee) Validate() error {
	if e.ID == "" {
		return goerr.New("employee ID is required")
	}
	if e.Name == "" {
		return goerr.New("employee name is required", goerr.V("id", e.ID))
	}
	return nil
}

// Flags returns CLI flags for the application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the application TOML configuration",
			Sources:     cli.EnvVars("RISKREG_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	categoryIDs := make(map[string]bool)
	for _, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category")
		}
		if categoryIDs[cat.ID] {
			return goerr.New("duplicate category ID", goerr.V("id", cat.ID))
		}
		categoryIDs[cat.ID] = true
	}

	employeeIDs := make(map[string]bool)
	for _, emp := range a.Employees {
		if err := emp.Validate(); err != nil {
			return goerr.Wrap(err, "invalid employee")
		}
		if employeeIDs[emp.ID] {
			return goerr.New("duplicate employee ID", goerr.V("id", emp.ID))
		}
		employeeIDs[emp.ID] = true
	}

	return nil
}

// Load reads and validates the configured TOML file. With no path set it
// returns an empty, valid configuration.
func (a *AppConfig) Load() error {
	if a.path == "" {
		return nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if err := a.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return nil
}

// Directory builds the employee directory service from the configuration
func (a *AppConfig) Directory() *directory.Static {
	names := make(map[string]string, len(a.Employees))
	for _, emp := range a.Employees {
		names[emp.ID] = emp.Name
	}
	return directory.NewStatic(names)
}
