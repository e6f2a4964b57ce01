package quantex

import "errors"

var (
	// ErrClientNotReady is an exported constant or variable used by the exchange client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrNotAuthenticated is an exported constant or variable used by the exchange client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoCredentialStore is an exported constant or variable used by the exchange client.
	ErrNoCredentialStore = errors.New("credential store required")
	// ErrInvalidLoginInput is an exported constant or variable used by the exchange client.
	ErrInvalidLoginInput = errors.New("email and password required")
	// ErrInvalidRegistration is an exported constant or variable used by the exchange client.
	ErrInvalidRegistration = errors.New("invalid registration request")
	// ErrInvalidConfirmationCode is an exported constant or variable used by the exchange client.
	ErrInvalidConfirmationCode = errors.New("confirmation code required")
	// ErrInvalidPasswordReset is an exported constant or variable used by the exchange client.
	ErrInvalidPasswordReset = errors.New("invalid password reset request")
	// ErrInvalidAmount is an exported constant or variable used by the exchange client.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidAsset is an exported constant or variable used by the exchange client.
	ErrInvalidAsset = errors.New("asset symbol required")
	// ErrInvalidOrder is an exported constant or variable used by the exchange client.
	ErrInvalidOrder = errors.New("invalid order request")
	// ErrInvalidTransaction is an exported constant or variable used by the exchange client.
	ErrInvalidTransaction = errors.New("invalid transaction request")
	// ErrInvalidUserID is an exported constant or variable used by the exchange client.
	ErrInvalidUserID = errors.New("user id required")
	// ErrInvalidEmailDispatch is an exported constant or variable used by the exchange client.
	ErrInvalidEmailDispatch = errors.New("email subject and body required")
	// ErrInvalidKYCSubmission is an exported constant or variable used by the exchange client.
	ErrInvalidKYCSubmission = errors.New("invalid kyc submission")
	// ErrHydrateInFlight is an exported constant or variable used by the exchange client.
	ErrHydrateInFlight = errors.New("session hydration already in flight")
	// ErrMarketDisabled is an exported constant or variable used by the exchange client.
	ErrMarketDisabled = errors.New("market data polling disabled")
)
