package protocol

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils"
)

// ConditionsFile is the document read from --conditions, JSON or YAML.
type ConditionsFile struct {
	Conditions []types.Condition `json:"conditions" yaml:"conditions" validate:"required,min=1,dive"`
}

// LoadConditions reads and validates a conditions file. Numbers keep their
// literal text so integers wider than a float64 mantissa survive decoding.
func LoadConditions(path string) ([]types.Condition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conditions file[%s]: %s", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml conditions file[%s]: %s", path, err)
		}
	}

	file := ConditionsFile{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conditions file[%s]: %s", path, err)
	}

	if err := utils.Validate(file); err != nil {
		return nil, fmt.Errorf("invalid conditions file[%s]: %s", path, err)
	}

	return file.Conditions, nil
}

// LoadRecords decodes a JSON array of records into a []shape.
func LoadRecords(path string, shape reflect.Type) (reflect.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to read records file[%s]: %s", path, err)
	}

	records := reflect.New(reflect.SliceOf(shape))
	if err := json.Unmarshal(data, records.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("failed to unmarshal records file[%s] into %s: %s", path, shape, err)
	}

	return records.Elem(), nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %s", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file[%s]: %s", path, err)
	}
	return nil
}
