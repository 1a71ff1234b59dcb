// Package bcdice provides a client for the BCDice-API dice rolling service.
//
// Every response is decoded into a generic JSON value, reshaped (the ok
// acknowledgement dropped, snake_case fields renamed) and checked against the
// exact set of fields the endpoint documents before it is converted to a typed
// result. A payload with a missing or an extra field is rejected.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := bcdice.NewClient(
//		"https://bcdice.example.com",
//		logger,
//		bcdice.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := client.DiceRoll(ctx, "DiceBot", "2D6")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(results.Text)
//
// # Error Handling
//
// Client methods only return *Error. Its Code is one of:
//
//   - CodeUnsupportedCommand: the game system does not understand the command
//   - CodeUnsupportedSystem: the game system ID is unknown
//   - CodeUnsupportedTable: the server could not run an original table
//   - CodeConnectionError: the server could not be reached or answered with an unexpected status
//   - CodeIncorrectResponse: the server answered with a payload of the wrong shape
//
// CodeUnknown is reported by CodeOf for errors that did not come from this package.
//
//	if bcdice.IsCode(err, bcdice.CodeUnsupportedCommand) {
//		// ask the user to check the command
//	}
package bcdice
