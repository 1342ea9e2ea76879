package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
	"github.com/piwi3910/SpritePack/internal/render"
	"github.com/piwi3910/SpritePack/internal/session"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Save and pack project files",
	}
	cmd.AddCommand(newProjectSaveCmd())
	cmd.AddCommand(newProjectPackCmd())
	return cmd
}

func newProjectSaveCmd() *cobra.Command {
	var (
		flags  atlasFlags
		output string
		order  string
	)

	cmd := &cobra.Command{
		Use:   "save [folder]",
		Short: "Scan a folder and save it as a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			folder := args[0]

			cfg, err := flags.config(cmd, "", nil)
			if err != nil {
				return err
			}
			entries, err := flags.scan(ctx, folder, false)
			if err != nil {
				return err
			}

			s, err := session.New(cfg)
			if err != nil {
				return err
			}
			s.Folder = folder
			s.SetEntries(entries)
			if order != "" {
				ordered, err := applyOrderFile(ctx, order, s.Entries())
				if err != nil {
					return err
				}
				if err := s.Reorder(ordered); err != nil {
					return err
				}
			}

			if output == "" {
				output = filepath.Base(filepath.Clean(folder)) + project.FileExtension
			}
			p := model.NewProject()
			p.Name = strings.TrimSuffix(filepath.Base(output), project.FileExtension)
			if err := project.Save(output, s.Project(p)); err != nil {
				return err
			}

			printSuccess("Saved project with %d sprites", s.Len())
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "project file (default <folder>"+project.FileExtension+")")
	cmd.Flags().StringVar(&order, "order", "", "CSV or XLSX file listing sprite names in custom order")
	return cmd
}

func newProjectPackCmd() *cobra.Command {
	var (
		outs   outputs
		rescan bool
		exif   bool
	)

	cmd := &cobra.Command{
		Use:   "pack [project]",
		Short: "Pack a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			s, err := session.FromProject(p)
			if err != nil {
				return err
			}
			logger.Debug("loaded project", "name", p.Name, "sprites", s.Len(), "size", p.Config.SizeLabel())

			if rescan {
				if s.Folder == "" {
					return fmt.Errorf("project %s has no folder to rescan", args[0])
				}
				scan := atlasFlags{exifTime: exif}
				entries, err := scan.scan(ctx, s.Folder, false)
				if err != nil {
					return err
				}
				s.SetEntries(entries)
			}

			quality, err := render.ParseQuality(outs.quality)
			if err != nil {
				return err
			}
			result, err := s.Repack()
			if err != nil {
				return err
			}

			cfg := s.Config()
			entries := s.Entries()
			if err := writeOutputs(ctx, outs, quality, result, cfg, entries); err != nil {
				return err
			}
			printNewline()
			printPackSummary(cfg, result, entries)
			return nil
		},
	}

	outs.register(cmd)
	cmd.Flags().BoolVar(&rescan, "rescan", false, "rescan the project folder, keeping the saved order")
	cmd.Flags().BoolVar(&exif, "exif-time", false, "use EXIF capture time when rescanning")
	return cmd
}
