
// Package catalog holds the list of universities, faculties, rating page URLs
// and the column layout of each rating table.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"abit-rating/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrNotFound = errors.New("not found in catalog")

type Catalog struct {
	Universities []models.University `json:"universities" mapstructure:"universities"`
}

// Load reads a YAML catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	if path == "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
			return nil, fmt.Errorf("read built-in catalog: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	c := &Catalog{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Universities) == 0 {
		return errors.New("catalog: no universities")
	}
	for i, u := range c.Universities {
		if u.Name == "" {
			return fmt.Errorf("catalog: university %d has no name", i+1)
		}
		if u.TableClass == "" {
			return fmt.Errorf("catalog: %s: html_table_class is required", u.Name)
		}
		for _, f := range u.Faculties {
			if err := validateFaculty(f); err != nil {
				return fmt.Errorf("catalog: %s: %w", u.Name, err)
			}
		}
	}
	return nil
}

func validateFaculty(f models.Faculty) error {
	if f.Name == "" || f.URL == "" {
		return fmt.Errorf("faculty %q: name and url are required", f.Name)
	}
	indices := map[int]bool{}
	fields := map[string]bool{}
	for _, col := range f.Columns {
		if col.Index < 1 {
			return fmt.Errorf("faculty %q: column index %d must be >= 1", f.Name, col.Index)
		}
		if col.Field == "" {
			return fmt.Errorf("faculty %q: column %d has no field", f.Name, col.Index)
		}
		if indices[col.Index] {
			return fmt.Errorf("faculty %q: duplicate column index %d", f.Name, col.Index)
		}
		if fields[col.Field] {
			return fmt.Errorf("faculty %q: duplicate field %q", f.Name, col.Field)
		}
		indices[col.Index] = true
		fields[col.Field] = true
	}
	return nil
}

// University returns the university with the 1-based id.
func (c *Catalog) University(id int) (models.University, error) {
	if id < 1 || id > len(c.Universities) {
		return models.University{}, fmt.Errorf("university %d: %w", id, ErrNotFound)
	}
	return c.Universities[id-1], nil
}

// Faculty returns a university and one of its faculties by 1-based ids.
func (c *Catalog) Faculty(universityID, facultyID int) (models.University, models.Faculty, error) {
	u, err := c.University(universityID)
	if err != nil {
		return models.University{}, models.Faculty{}, err
	}
	if facultyID < 1 || facultyID > len(u.Faculties) {
		return models.University{}, models.Faculty{}, fmt.Errorf("faculty %d of %s: %w", facultyID, u.Name, ErrNotFound)
	}
	return u, u.Faculties[facultyID-1], nil
}
