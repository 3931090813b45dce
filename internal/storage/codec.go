package storage

import (
	"encoding/json"
	"errors"

	"genfit/internal/model"
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeResult(r model.Result) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeResult(data []byte) (model.Result, error) {
	var result model.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return model.Result{}, err
	}
	if err := checkVersion(result.VersionedRecord); err != nil {
		return model.Result{}, err
	}
	return result, nil
}

func EncodeFitnessHistory(h model.FitnessHistory) ([]byte, error) {
	return json.Marshal(h)
}

func DecodeFitnessHistory(data []byte) (model.FitnessHistory, error) {
	var history model.FitnessHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return model.FitnessHistory{}, err
	}
	if err := checkVersion(history.VersionedRecord); err != nil {
		return model.FitnessHistory{}, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != model.CurrentSchemaVersion || v.CodecVersion != model.CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
