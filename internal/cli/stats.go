package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/stats"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show timestamp format usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := stats.InitDB(); err != nil {
			return err
		}
		s := stats.FormatStats()

		if statsJSON {
			data, err := json.Marshal(s)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(styleBrand.Render("Format usage"))
		printField("d  short date", fmt.Sprint(s.ShortDate))
		printField("D  long date", fmt.Sprint(s.LongDate))
		printField("t  short time", fmt.Sprint(s.ShortTime))
		printField("T  long time", fmt.Sprint(s.LongTime))
		printField("f  short date/time", fmt.Sprint(s.ShortDateTime))
		printField("F  long date/time", fmt.Sprint(s.LongDateTime))
		printField("R  relative", fmt.Sprint(s.Relative))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")
}
