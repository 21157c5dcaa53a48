package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/text"
	"github.com/mrnavastar/mclaunch/services"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func console(c *cli.Context) (util.Console, func()) {
	if !c.Bool("json-log") {
		return util.PtermConsole{}, func() {}
	}
	logger, err := zap.NewProduction()
	util.Fatal(err)
	return util.NewZapConsole(logger), func() { logger.Sync() }
}

func main() {
	app := &cli.App{
		Name: "mclaunch",
		Usage: "Launch Minecraft from the command line",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json-log", Usage: "Write structured JSON logs instead of pretty output"},
		},
		Commands: []*cli.Command {
			{
				Name: "init",
				Usage: "Set the .minecraft directory to launch from",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return errors.New("usage: init <minecraft dir>")
					}
					if err := fileutils.Setup(c.Args().Get(0)); err != nil {
						return err
					}
					fmt.Println("Done.")
					return nil
				},
			},
			{
				Name: "login",
				Usage: "Store a user's uuid and access token",
				ArgsUsage: "<name> <uuid> <access token>",
				Action: func(c *cli.Context) error {
					args := c.Args()
					if args.Len() < 3 {
						return errors.New("usage: login <name> <uuid> <access token>")
					}

					id, err := uuid.Parse(args.Get(1))
					if err != nil {
						return err
					}

					err1 := fileutils.SaveUser(util.User{DisplayName: args.Get(0), ProfileID: id, AccessToken: args.Get(2)})
					if err1 != nil {
						return err1
					}
					fmt.Println("Saved " + args.Get(0))
					return nil
				},
			},
			{
				Name: "ls",
				Aliases: []string{"list"},
				Usage:   "List installed versions",
				Action:  func(c *cli.Context) error {
					config, err := fileutils.LoadConfig()
					if err != nil {
						return err
					}

					ids, err1 := services.InstalledVersions(config.WorkDir)
					if err1 != nil {
						return err1
					}
					latest, _ := services.LatestVersion(config.WorkDir)

					lid := len("VERSION:")
					for _, id := range ids {
						if len(id) > lid {
							lid = len(id)
						}
					}

					fmt.Println()
					fmt.Println(text.AlignDefault.Apply("VERSION:", lid + 2) + "TYPE:")
					for _, id := range ids {
						ver, err2 := services.LoadVersion(config.WorkDir, id)
						kind := "invalid"
						if err2 == nil {
							kind = string(ver.Type)
						}
						if id == latest {
							kind += " (latest)"
						}
						fmt.Println(text.AlignDefault.Apply(text.Bold.Sprint(id), lid + 2) + kind)
					}
					fmt.Println()
					return nil
				},
			},
			{
				Name: "profiles",
				Usage: "List launcher profiles",
				Action: func(c *cli.Context) error {
					config, err := fileutils.LoadConfig()
					if err != nil {
						return err
					}

					profiles, err1 := fileutils.ListProfiles(config.WorkDir)
					if err1 != nil {
						return err1
					}

					lname := len("NAME:")
					for _, profile := range profiles {
						if len(profile.Name) > lname {
							lname = len(profile.Name)
						}
					}

					fmt.Println()
					fmt.Println(text.AlignDefault.Apply("NAME:", lname + 2) + "VERSION:")
					for _, profile := range profiles {
						version := profile.VersionID
						if version == "" {
							version = "latest"
						}
						fmt.Println(text.AlignDefault.Apply(text.Bold.Sprint(profile.Name), lname + 2) + text.Underline.Sprint(version))
					}
					fmt.Println()
					return nil
				},
			},
			{
				Name: "launch",
				Usage: "Launch the game",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "Launcher profile, defaults to the selected one"},
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "User stored with login", Required: true},
					&cli.StringFlag{Name: "version", Usage: "Version to launch instead of the profile's"},
				},
				Action: func(c *cli.Context) error {
					out, sync := console(c)
					defer sync()

					config, err := fileutils.LoadConfig()
					if err != nil {
						return err
					}

					profile, err1 := fileutils.GetProfile(config.WorkDir, c.String("profile"))
					if err1 != nil {
						if !errors.Is(err1, fileutils.ErrProfileNotFound) && !errors.Is(err1, os.ErrNotExist) {
							return err1
						}
						out.Info("No launcher profile found, using defaults.")
						profile = util.Profile{}
					}

					user, err2 := fileutils.LoadUser(c.String("user"))
					if err2 != nil {
						return err2
					}

					verID := c.String("version")
					if verID == "" {
						verID = profile.VersionID
					}
					if verID == "" || strings.EqualFold(verID, "latest") {
						latest, err3 := services.LatestVersion(config.WorkDir)
						if err3 != nil {
							return err3
						}
						verID = latest
					}

					ver, err4 := services.LoadVersion(config.WorkDir, verID)
					if err4 != nil {
						return err4
					}

					launcher := services.NewGameLauncher(services.Options{
						WorkDir: config.WorkDir,
						JavaHome: config.JavaHome,
						BootstrapClass: config.BootstrapClass,
						JoinStderr: config.JoinStderr,
						Console: out,
					})

					session, err5 := launcher.Launch(c.Context, ver, profile, user)
					if err5 != nil {
						return err5
					}
					<-session.Done()

					if launcher.HasError() {
						return fmt.Errorf("game exited with code %d", session.Result().ExitCode)
					}
					return nil
				},
			},
		},
	}

	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
