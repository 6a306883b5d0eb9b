package errors

// Process exit codes reported by the hashcore command.
const (
	ExitOK = 0

	// generic failure
	ExitFailure = 1

	// input err
	ExitInvalidInput = 2
	ExitReadInput    = 3

	// config and logging err
	ExitConfig  = 10
	ExitLogging = 11

	// chain err
	ExitChainStorage = 20
	ExitChainBroken  = 21

	// mac and signature err
	ExitMACMismatch      = 30
	ExitInvalidSignature = 31

	// known-answer self test failed
	ExitSelfTest = 40
)
