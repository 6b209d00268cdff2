package seeder

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Fixture is a declarative catalog snapshot. Owners and users are referred
// to by Key from the other sections.
type Fixture struct {
	Owners     []ContactFixture   `yaml:"owners"`
	Users      []ContactFixture   `yaml:"users"`
	DataStores []DataStoreFixture `yaml:"datastores"`
	Topics     []TopicFixture     `yaml:"stream_topics"`
	Access     []AccessFixture    `yaml:"access_records"`
}

type ContactFixture struct {
	Key   string  `yaml:"key"`
	Name  string  `yaml:"name"`
	Email string  `yaml:"email"`
	Role  *string `yaml:"role"`
	Phone *string `yaml:"phone"`
}

type DataStoreFixture struct {
	Name        string         `yaml:"name"`
	Technology  string         `yaml:"technology"`
	Description *string        `yaml:"description"`
	Owners      []string       `yaml:"owners"`
	Tables      []TableFixture `yaml:"tables"`
}

type TableFixture struct {
	Name           string          `yaml:"name"`
	Description    *string         `yaml:"description"`
	LifecycleState *string         `yaml:"lifecycle_state"`
	QualityGrade   *string         `yaml:"quality_grade"`
	Compliant      *bool           `yaml:"compliant"`
	Owners         []string        `yaml:"owners"`
	Columns        []ColumnFixture `yaml:"columns"`
}

type TopicFixture struct {
	Name           string          `yaml:"name"`
	Description    *string         `yaml:"description"`
	LifecycleState *string         `yaml:"lifecycle_state"`
	Compliant      *bool           `yaml:"compliant"`
	Owners         []string        `yaml:"owners"`
	Columns        []ColumnFixture `yaml:"columns"`
}

type ColumnFixture struct {
	Name        string  `yaml:"name"`
	DataType    string  `yaml:"data_type"`
	Description *string `yaml:"description"`
}

type AccessFixture struct {
	User        string    `yaml:"user"`
	AssetName   string    `yaml:"asset_name"`
	RequestedAt time.Time `yaml:"requested_at"`
	Purpose     string    `yaml:"purpose"`
	Permissions []string  `yaml:"permissions"`
	Status      *string   `yaml:"status"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder fixture: %w", err)
	}

	var fx Fixture
	if err := cleanenv.ReadConfig(path, &fx); err != nil {
		return nil, fmt.Errorf("seeder fixture: read %s: %w", path, err)
	}
	return &fx, nil
}
