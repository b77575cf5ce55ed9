package levels

import (
	"embed"
	"io/fs"

	"github.com/vovakirdan/laserpunk/internal/registry"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// StartRoom is the first room of the built-in campaign.
const StartRoom = "first_floor"

// BuiltinID is the registry ID of the embedded campaign.
const BuiltinID = "builtin"

func init() {
	registry.Register(registry.CampaignInfo{
		ID:        BuiltinID,
		Title:     "Laserpunk",
		StartRoom: StartRoom,
	}, func() rooms.Catalog { return Builtin() })
}

// Builtin returns a loader over the embedded campaign.
func Builtin() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		panic(err)
	}
	return NewFSLoader(sub, BuiltinID)
}
