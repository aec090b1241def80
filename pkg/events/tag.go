package events

import (
	"strings"
)

// Tag is the normalized form of an event discriminator: upper case with
// ':' replaced by '_' ("audio:play" becomes AUDIO_PLAY).
type Tag string

// Registered event tags.
const (
	TagAppKnocking         Tag = "APP_KNOCKING"
	TagAudioASRDone        Tag = "AUDIO_ASR_DONE"
	TagAudioASRRecordDone  Tag = "AUDIO_ASR_RECORD_DONE"
	TagAudioDTMF           Tag = "AUDIO_DTMF"
	TagAudioEarmuffOff     Tag = "AUDIO_EARMUFF_OFF"
	TagAudioEarmuffOn      Tag = "AUDIO_EARMUFF_ON"
	TagAudioMuteOff        Tag = "AUDIO_MUTE_OFF"
	TagAudioMuteOn         Tag = "AUDIO_MUTE_ON"
	TagAudioPlay           Tag = "AUDIO_PLAY"
	TagAudioPlayDone       Tag = "AUDIO_PLAY_DONE"
	TagAudioPlayStop       Tag = "AUDIO_PLAY_STOP"
	TagAudioRecord         Tag = "AUDIO_RECORD"
	TagAudioRecordDone     Tag = "AUDIO_RECORD_DONE"
	TagAudioRingingStart   Tag = "AUDIO_RINGING_START"
	TagAudioSay            Tag = "AUDIO_SAY"
	TagAudioSayDone        Tag = "AUDIO_SAY_DONE"
	TagAudioSayStop        Tag = "AUDIO_SAY_STOP"
	TagAudioSpeakingOff    Tag = "AUDIO_SPEAKING_OFF"
	TagAudioSpeakingOn     Tag = "AUDIO_SPEAKING_ON"
	TagConversationUpdated Tag = "CONVERSATION_UPDATED"
	TagCustom              Tag = "CUSTOM"
	TagEphemeral           Tag = "EPHEMERAL"
	TagEventDelete         Tag = "EVENT_DELETE"
	TagLegStatusUpdate     Tag = "LEG_STATUS_UPDATE"
	TagMemberInvited       Tag = "MEMBER_INVITED"
	TagMemberJoined        Tag = "MEMBER_JOINED"
	TagMemberLeft          Tag = "MEMBER_LEFT"
	TagMemberMedia         Tag = "MEMBER_MEDIA"
	TagMessage             Tag = "MESSAGE"
	TagMessageDelivered    Tag = "MESSAGE_DELIVERED"
	TagMessageRejected     Tag = "MESSAGE_REJECTED"
	TagMessageSeen         Tag = "MESSAGE_SEEN"
	TagMessageSubmitted    Tag = "MESSAGE_SUBMITTED"
	TagMessageUndelivered  Tag = "MESSAGE_UNDELIVERABLE"
	TagRTCAnswer           Tag = "RTC_ANSWER"
	TagRTCAnswered         Tag = "RTC_ANSWERED"
	TagRTCHangup           Tag = "RTC_HANGUP"
	TagRTCOffer            Tag = "RTC_OFFER"
	TagRTCRinging          Tag = "RTC_RINGING"
	TagRTCStatus           Tag = "RTC_STATUS"
	TagRTCTransfer         Tag = "RTC_TRANSFER"
	TagSIPAMDMachine       Tag = "SIP_AMD_MACHINE"
	TagSIPAnswered         Tag = "SIP_ANSWERED"
	TagSIPHangup           Tag = "SIP_HANGUP"
	TagSIPMachine          Tag = "SIP_MACHINE"
	TagSIPRinging          Tag = "SIP_RINGING"
	TagSIPStatus           Tag = "SIP_STATUS"
	TagUnknown             Tag = "UNKNOWN"
)

// CustomPrefix starts every discriminator of the custom event family.
const CustomPrefix = "custom:"

// sip:amd_machine keeps its underscore on the wire, so it cannot go through
// the general ':' <-> '_' rule in the encode direction.
const sipAMDMachineWire = "sip:amd_machine"

// NormalizeType maps a wire discriminator to its tag.
func NormalizeType(wire string) Tag {
	if strings.EqualFold(wire, sipAMDMachineWire) {
		return TagSIPAMDMachine
	}

	return Tag(strings.ReplaceAll(strings.ToUpper(wire), ":", "_"))
}

// WireType renders a tag back to its wire spelling.
func WireType(tag Tag) string {
	if tag == TagSIPAMDMachine {
		return sipAMDMachineWire
	}

	return strings.ReplaceAll(strings.ToLower(string(tag)), "_", ":")
}

// CanonicalTag returns the tag of wire and whether wire is that tag's exact
// wire spelling. Only canonical spellings select a registered variant, so
// "audio_play" or "sip:amd:machine" decode as unknown events and keep their
// original type.
func CanonicalTag(wire string) (Tag, bool) {
	tag := NormalizeType(wire)

	return tag, WireType(tag) == wire
}

// IsCustomType reports whether wire belongs to the custom:<suffix> family.
func IsCustomType(wire string) bool {
	return len(wire) > len(CustomPrefix) && strings.HasPrefix(wire, CustomPrefix)
}

// String returns the wire spelling of the tag.
func (t Tag) String() string {
	return WireType(t)
}
