package ircmsg

// Server reply codes the client cares about. Everything else is routed to
// the log, never to the operator.
const (
	RplWelcome           = "001"
	RplWhoisUser         = "311"
	RplListStart         = "321"
	RplList              = "322"
	RplListEnd           = "323"
	RplTopic             = "332"
	RplNamReply          = "353"
	RplEndOfNames        = "366"
	RplMotd              = "372"
	RplMotdStart         = "375"
	RplEndOfMotd         = "376"
	ErrNicknameInUse     = "433"
	ErrChanOpPrivsNeeded = "482"
)
