package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidManifest indicates that the manifest could not be parsed.
	ErrInvalidManifest = errors.New("invalid asset manifest")

	// ErrManifestUnknownField indicates a key the manifest schema does not define.
	ErrManifestUnknownField = errors.New("unknown field in asset manifest")

	// ErrNoAssets indicates a manifest without any [[asset]] entry.
	ErrNoAssets = errors.New("asset manifest declares no assets")

	// ErrEmptyAssetPath indicates an [[asset]] entry without a path.
	ErrEmptyAssetPath = errors.New("asset path is empty")

	// ErrDuplicateAsset indicates two assets sharing a variable name or an output file.
	ErrDuplicateAsset = errors.New("duplicate asset")

	// ErrGenerationFailed is returned by Generate when at least one asset failed.
	ErrGenerationFailed = errors.New("asset generation failed")
)

// Stage names the step of the pipeline an AssetError occurred in.
type Stage string

// Pipeline stages of a single asset.
const (
	StageStat    Stage = "stat"
	StageRequest Stage = "request"
	StageEncode  Stage = "encode"
	StageWrite   Stage = "write"
)

// AssetError records which asset failed and at which stage.
type AssetError struct {
	Asset string
	Stage Stage
	Err   error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %s: %v", e.Asset, e.Stage, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
