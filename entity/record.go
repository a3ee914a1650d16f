package entity

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/45air/airlocal/constants"
	"github.com/pkg/errors"
)

func RecordPath(envPath string) string {
	return filepath.Join(envPath, constants.RecordFileName)
}

// ReadRecord loads the environment record stored in envPath.
func ReadRecord(envPath string) (*EnvironmentRecord, error) {
	b, err := ioutil.ReadFile(RecordPath(envPath))
	if err != nil {
		return nil, err
	}
	record := &EnvironmentRecord{}
	if err := json.Unmarshal(b, record); err != nil {
		return nil, errors.Wrap(err, "decode environment record")
	}
	record.Path = envPath
	record.Slug = filepath.Base(envPath)
	return record, nil
}

func WriteRecord(record *EnvironmentRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "encode environment record")
	}
	return ioutil.WriteFile(RecordPath(record.Path), b, 0644)
}
