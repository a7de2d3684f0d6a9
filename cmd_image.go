package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"betty_server_go/betty"
	"betty_server_go/models"

	"github.com/spf13/cobra"
)

func newImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Work with images in Betty directly",
	}
	cmd.AddCommand(newImageGetCommand(), newImageUploadCommand(), newImageURLCommand())
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newImageGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print image metadata from Betty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.CoerceImageID(args[0])
			if err != nil {
				return err
			}
			img, err := buildImageService(cmd.Context(), settings).GetImage(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, img)
		},
	}
}

func newImageUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to Betty and print the image reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			img, err := buildImageService(cmd.Context(), settings).Upload(cmd.Context(), filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			ref := models.NewImageField(img.ID)
			return printJSON(cmd, ref)
		},
	}
}

func newImageURLCommand() *cobra.Command {
	var (
		ratio    string
		width    int
		format   string
		animated bool
	)
	cmd := &cobra.Command{
		Use:   "url <id>",
		Short: "Print the crop URL of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.CoerceImageID(args[0])
			if err != nil {
				return err
			}
			if animated {
				fmt.Fprintln(cmd.OutOrStdout(), betty.AnimatedURL(settings.BettyImageURL, id))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), betty.CropURL(settings.BettyImageURL, id, ratio, width, format))
			return nil
		},
	}
	cmd.Flags().StringVar(&ratio, "ratio", betty.DefaultRatio, "crop ratio, e.g. 16x9")
	cmd.Flags().IntVar(&width, "width", 600, "image width in pixels")
	cmd.Flags().StringVar(&format, "format", betty.DefaultFormat, "jpg or png")
	cmd.Flags().BoolVar(&animated, "animated", false, "print the animated gif URL")
	return cmd
}
