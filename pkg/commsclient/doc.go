// Package commsclient provides the entry point for constructing a
// communications API client that implements the api.Client interface.
//
// It normalises the configured base URLs, loads the application private key
// from disk when only a path is given, and wires the credential set and HTTP
// transport behind the resource clients.
//
// Quick start
//
//	ctx := context.Background()
//
//	cli, err := commsclient.New(ctx, &comms.Config{
//	  APIKey:          "abcd1234",
//	  APISecret:       "s3cr3t",
//	  ApplicationID:   "aaaaaaaa-bbbb-cccc-dddd-0123456789ab",
//	  PrivateKeyPath:  "private.key",
//	})
//	if err != nil { log.Fatal(err) }
//
//	balance, err := cli.Account().GetBalance(ctx)
//
// Construction never fails because a credential kind is missing: each call
// selects from whatever the config holds, and an endpoint none of whose
// acceptable kinds are present fails with comms.ErrNoUsableCredential.
//
// # Helpers
//
// NewWithToken, NewWithKeySecret and NewWithApplication wrap New for the
// common single-credential setups.
package commsclient
