package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/spf13/cobra"
)

var adminFlags struct {
	name   string
	image  string
	series string
	tag    string
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Curate the catalog (admin accounts only)",
}

var adminAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a car",
	RunE:  runAdminAdd,
}

var adminEditCmd = &cobra.Command{
	Use:   "edit <car-id>",
	Short: "Change a car's name, image or series",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminEdit,
}

var adminTagCmd = &cobra.Command{
	Use:   "tag <car-id>...",
	Short: "Add one tag to every listed car",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdminTag,
}

func init() {
	for _, cmd := range []*cobra.Command{adminAddCmd, adminEditCmd} {
		f := cmd.Flags()
		f.StringVar(&adminFlags.name, "name", "", "Car name")
		f.StringVar(&adminFlags.image, "image", "", "Image URL")
		f.StringVar(&adminFlags.series, "series", "", "Series")
	}
	_ = adminAddCmd.MarkFlagRequired("name")
	_ = adminAddCmd.MarkFlagRequired("image")
	_ = adminAddCmd.MarkFlagRequired("series")

	adminTagCmd.Flags().StringVar(&adminFlags.tag, "tag", "", "Tag to add (required)")
	_ = adminTagCmd.MarkFlagRequired("tag")

	adminCmd.AddCommand(adminAddCmd)
	adminCmd.AddCommand(adminEditCmd)
	adminCmd.AddCommand(adminTagCmd)
}

func runAdminAdd(cmd *cobra.Command, _ []string) error {
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	added, err := c.CreateCar(cmd.Context(), cars.CreateCarRequest{
		Name:   adminFlags.name,
		Image:  adminFlags.image,
		Series: adminFlags.series,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", added.Car.Name, added.Car.Id)
	return nil
}

func runAdminEdit(cmd *cobra.Command, args []string) error {
	var req cars.UpdateCarRequest
	if cmd.Flags().Changed("name") {
		req.Name = &adminFlags.name
	}
	if cmd.Flags().Changed("image") {
		req.Image = &adminFlags.image
	}
	if cmd.Flags().Changed("series") {
		req.Series = &adminFlags.series
	}
	if req.Name == nil && req.Image == nil && req.Series == nil {
		return cars.ErrNoFieldsToUpdate
	}

	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	updated, err := c.UpdateCar(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, %s\n", updated.Car.Id, updated.Car.Name, updated.Car.Series)
	return nil
}

func runAdminTag(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(adminFlags.tag) == "" {
		return fmt.Errorf("Error saving tags: %w", cars.ErrBlankTag)
	}

	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}

	_, err = c.ApplyTag(cmd.Context(), args, adminFlags.tag)
	notice, _ := c.Notices.Current()
	if err != nil {
		return errors.New(notice.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), notice.Message)
	return nil
}
