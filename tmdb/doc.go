// Package tmdb provides a client for the trending endpoints of the TMDb API.
//
// Only the trending listing is implemented. A request is a single
// authenticated GET; the client does not retry and does not paginate.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tmdb.NewClient(
//		"your-read-access-token",
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	items, err := client.Trending(ctx, tmdb.MediaTypeMovie, tmdb.WindowDay)
//
// # Error Handling
//
// Non-success responses are returned as *APIError, which carries the
// status code and the status message decoded from the TMDb error body:
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package tmdb
