// Package webhook receives event callbacks over HTTP.
//
// NewHandler returns a chi router that accepts POST /events, verifies the
// signed JWT in the Authorization header when a signature secret is
// configured, decodes the body through the event codec and passes every
// event to a HandlerFunc:
//
//	handler := webhook.NewHandler(func(ctx context.Context, event events.Event) error {
//	  log.Printf("%s from %s", event.Type(), event.Header().From)
//	  return nil
//	}, webhook.WithSignatureSecret(os.Getenv("COMMS_SIGNATURE_SECRET")))
//
//	log.Fatal(webhook.Serve(ctx, ":8080", handler, nil))
//
// A body may hold a single event object or an array of events. Unknown event
// types reach the handler as *events.UnknownEvent with every field kept.
package webhook
