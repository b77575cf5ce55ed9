package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserpunk/internal/registry"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List campaigns and the rooms of the selected one",
	Long: `Display every registered campaign, then the rooms of the campaign
selected with --campaign or --levels.

Examples:
  laserpunk rooms
  laserpunk rooms --levels ./my-rooms`,
	Args: cobra.NoArgs,
	RunE: runRooms,
}

func runRooms(_ *cobra.Command, _ []string) error {
	campaigns := registry.List()

	fmt.Println("Campaigns:")
	fmt.Println()
	maxIDLen := 0
	for _, c := range campaigns {
		maxIDLen = max(maxIDLen, len(c.ID))
	}
	for _, c := range campaigns {
		fmt.Printf("  %-*s  %s (starts in %s)\n", maxIDLen, c.ID, c.Title, c.StartRoom)
	}
	fmt.Println()

	camp, err := openCampaign()
	if err != nil {
		return err
	}

	fmt.Printf("Rooms in %s:\n", camp.title)
	fmt.Println()

	ids := camp.catalog.IDs()
	if len(ids) == 0 {
		fmt.Println("  No rooms found.")
		return nil
	}
	maxIDLen = 0
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	for _, id := range ids {
		def, err := camp.catalog.Definition(id)
		if err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxIDLen, id, err)
			continue
		}
		marker := " "
		if id == camp.start {
			marker = "*"
		}
		if def.Terminal {
			fmt.Printf("%s %-*s  (exit)\n", marker, maxIDLen, id)
			continue
		}
		targets := make([]string, 0, len(def.Connections))
		for _, c := range def.Connections {
			targets = append(targets, c.Target)
		}
		size := ""
		if def.Grid != nil {
			size = fmt.Sprintf("%dx%d", def.Grid.W, def.Grid.H)
		}
		name := def.Name
		if name == "" {
			name = id
		}
		fmt.Printf("%s %-*s  %-24s %-7s -> %s\n", marker, maxIDLen, id, name, size, strings.Join(targets, ", "))
	}

	fmt.Println()
	fmt.Println("Trace a room with: laserpunk trace <room>")
	return nil
}
