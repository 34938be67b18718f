package vm

// Protocol tokens understood by the controller.
const (
	tokenAck = "E"

	tokenDelayShort = "W10"
	tokenDelaySpeed = "W100"

	tokenCoordinatedMode = "C08"
	tokenRapidMode       = "C10"

	headerRapidX       = "V1"
	headerRapidY       = "V2"
	headerRapidZ       = "V3"
	headerCoordinated  = "V21"
	headerArc          = "K21"
	headerFeedMetric   = "G21"
	headerFeedImperial = "G20"

	relayPrefixCW  = "A5"
	relayPrefixCCW = "AD"

	dutyPrefix = "D"
)
