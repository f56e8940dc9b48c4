package board

import (
	"errors"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/mbtanext/mbtanext/pkg/config"
	"github.com/mbtanext/mbtanext/pkg/mbta"
)

func RegisterCLI() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML stop configuration, uses the built-in board when unset",
	}

	return &cli.Command{
		Name:  "board",
		Usage: "Show the next departures for the configured stops",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "fetch and display the departure board once",
				Flags: []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					board, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					client := mbta.NewClient(os.Getenv("MBTANEXT_API_KEY"))

					results, err := Fetch(c.Context, client, board.Stops())
					if errors.Is(err, mbta.ErrRateLimited) {
						return cli.Exit("⚠️  MBTA API rate limit exceeded. Please wait a moment and try again.", 1)
					} else if err != nil {
						return err
					}

					now := time.Now()
					offset := 0
					for _, group := range board.Groups {
						RenderGroup(os.Stdout, group.Title, results[offset:offset+len(group.Stops)], now)
						offset += len(group.Stops)
					}

					return nil
				},
			},
			{
				Name:  "config",
				Usage: "show the resolved stop configuration",
				Flags: []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					board, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					pretty.Println(board)

					return nil
				},
			},
		},
	}
}
