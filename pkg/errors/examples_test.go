package errors_test

import (
	"fmt"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewNotFoundError("place", "four-barrel-coffee-san-francisco")

	if errors.IsNotFound(err) {
		fmt.Println("Place not found")
	}

	// Output: Place not found
}

// Example_collectionError shows how a failed fan-out reports its providers.
func Example_collectionError() {
	err := errors.NewCollectionError(
		errors.NewProviderError("yelp", errors.NewAPIError("yelp", 429, "too many requests")),
	)

	if errors.IsRateLimited(err) {
		fmt.Println("Rate limited:", err.Providers())
	}

	// Output: Rate limited: [yelp]
}
