// pkg/tilegrid/errors.go
package tilegrid

import "errors"

var (
	// ErrGridSealed is returned when cells are added after generation completed.
	ErrGridSealed = errors.New("tilegrid: grid generation already complete")
	// ErrDimensions reports a level with a non-positive width or height.
	ErrDimensions = errors.New("tilegrid: invalid level dimensions")
	// ErrUnknownTileID reports a tile ID outside every tileset range.
	ErrUnknownTileID = errors.New("tilegrid: tile id outside any tileset")
	// ErrLayerKind reports a tile whose tileset does not match its layer.
	ErrLayerKind = errors.New("tilegrid: tile does not belong to layer kind")
	// ErrLayerSize reports a layer whose tile count is not width*height.
	ErrLayerSize = errors.New("tilegrid: layer size mismatch")
	// ErrMissingCell reports an object or flooring referencing an ungenerated cell.
	ErrMissingCell = errors.New("tilegrid: no cell at coordinate")
	// ErrPlacement reports a map object that could not be placed.
	ErrPlacement = errors.New("tilegrid: placement rejected")
	// ErrUnknownObject reports a map object with an unsupported type.
	ErrUnknownObject = errors.New("tilegrid: unknown object type")
)
