// Package events decodes and encodes conversation event payloads.
//
// Every event is a JSON object whose "type" member selects its variant.
// Decode normalizes the type (upper case, ':' to '_') and looks it up in a
// registry built once at package init:
//
//   - registered types decode into their *Event struct, with the "body"
//     member decoded into the variant's body shape;
//   - custom:<suffix> types decode into *CustomEvent and keep the suffix,
//     which is part of the event's identity;
//   - any other well-formed object decodes into *UnknownEvent, which keeps
//     every member and re-encodes losslessly.
//
// sip:amd_machine is the one type whose wire spelling does not follow the
// general rule; NormalizeType and WireType handle it in both directions.
//
// The same Registry type drives the nested unions: MessageBody (selected by
// message_type) and the From/To endpoints of a MemberChannel, which inherit
// the channel's type when they omit their own.
//
// Outbound events are created with the New* builders, which validate only
// in Build.
package events
