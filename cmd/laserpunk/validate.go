package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check room files for errors",
	Long: `Load every room file in dir (or the selected campaign) and report
rooms that cannot be built. Exits with status 1 when any room is broken.

Examples:
  laserpunk validate
  laserpunk validate ./my-rooms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	var loader *levels.Loader
	if len(args) == 1 {
		loader = levels.NewLoader(args[0])
	} else {
		camp, err := openCampaign()
		if err != nil {
			return err
		}
		if camp.loader == nil {
			return fmt.Errorf("campaign %s is not file based", camp.id)
		}
		loader = camp.loader
	}

	ok := color.Style{color.FgGreen}
	bad := color.Style{color.FgRed, color.OpBold}

	defs, err := loader.LoadAll()
	for _, d := range defs {
		fmt.Printf("  %s %s\n", ok.Sprint("ok"), d.ID)
	}
	if err == nil {
		fmt.Printf("%d rooms valid\n", len(defs))
		return nil
	}

	problems := splitErrors(err)
	for _, p := range problems {
		code := "LOAD"
		var ve laser.ValidationError
		if errors.As(p, &ve) {
			code = ve.Code
		}
		fmt.Printf("  %s %-20s %v\n", bad.Sprint("!!"), code, p)
	}
	fmt.Fprintf(os.Stderr, "%d rooms valid, %d problems\n", len(defs), len(problems))
	return errors.New("validation failed")
}

// splitErrors flattens an errors.Join tree one level.
func splitErrors(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
