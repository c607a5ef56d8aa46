package main

import (
	"fmt"
	"strconv"

	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <car-id> <rating>",
	Short: "Rate a car from 0.5 to 5 in half steps, 0 clears your rating",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

var wishlistCmd = &cobra.Command{
	Use:   "wishlist <car-id>",
	Short: "Add or remove a car from your wishlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], models.Wishlist)
	},
}

var ownCmd = &cobra.Command{
	Use:   "own <car-id>",
	Short: "Mark or unmark a car as owned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args[0], models.OwnedCars)
	},
}

var userCmd = &cobra.Command{
	Use:   "user <uid>",
	Short: "Show another user's owned cars and wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runUser,
}

func runRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.ParseFloat(args[1], 64)
	if err != nil || !models.IsValidRating(rating) {
		return fmt.Errorf("rating must be 0 or a multiple of 0.5 between 0.5 and 5")
	}

	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	updated, err := c.SetRating(cmd.Context(), args[0], rating)
	if err != nil {
		return err
	}

	car, _ := c.App.Car(updated.CarID)
	out := cmd.OutOrStdout()
	if updated.Rating == 0 {
		fmt.Fprintf(out, "Cleared your rating for %s\n", car.Name)
	} else {
		fmt.Fprintf(out, "Rated %s %.1f\n", car.Name, updated.Rating)
	}
	fmt.Fprintf(out, "Average %.1f from %d ratings\n", car.DisplayRating(), car.RatingCount)
	return nil
}

func runToggle(cmd *cobra.Command, carId string, collection models.Collection) error {
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	toggled, err := c.ToggleCollection(cmd.Context(), carId, collection)
	if err != nil {
		return err
	}

	car, _ := c.App.Car(toggled.CarID)
	verb := "Removed"
	prep := "from"
	if toggled.Member {
		verb, prep = "Added", "to"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s your %s\n", verb, car.Name, prep, collectionLabel(collection))
	return nil
}

func collectionLabel(collection models.Collection) string {
	if collection == models.OwnedCars {
		return "owned cars"
	}
	return "wishlist"
}

func runUser(cmd *cobra.Command, args []string) error {
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}
	page, err := c.UserPage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\nOwned (%d)\n", page.Email, len(page.OwnedCars))
	printCars(out, page.OwnedCars, nil)
	fmt.Fprintf(out, "\nWishlist (%d)\n", len(page.Wishlist))
	printCars(out, page.Wishlist, nil)
	return nil
}
