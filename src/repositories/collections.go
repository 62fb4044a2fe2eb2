package repositories

import "itasset/src/storage"

// EnsureCollections idempotently creates every collection file with its fixed
// header row. Called once from the composition root before serving requests.
func EnsureCollections(store *storage.Store, layout storage.Layout) error {
	collections := []struct {
		path   string
		header []string
	}{
		{layout.Containers(), containerHeader},
		{layout.AssetTypes(), assetTypeHeader},
		{layout.SubTypes(), subTypeHeader},
		{layout.Assets(), assetHeader},
	}
	for _, c := range collections {
		if err := store.EnsureExists(c.path, c.header); err != nil {
			return err
		}
	}
	return nil
}
