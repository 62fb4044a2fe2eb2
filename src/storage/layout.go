package storage

import "path/filepath"

// Layout resolves the on-disk path of each collection under the data
// directory. One flat CSV file per collection kind.
type Layout struct {
	Dir string
}

func (l Layout) Containers() string {
	return filepath.Join(l.Dir, "containers.csv")
}

func (l Layout) AssetTypes() string {
	return filepath.Join(l.Dir, "asset_types.csv")
}

func (l Layout) SubTypes() string {
	return filepath.Join(l.Dir, "asset_subtypes.csv")
}

func (l Layout) Assets() string {
	return filepath.Join(l.Dir, "assets.csv")
}
