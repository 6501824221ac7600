package api

// ExecuteTransactionRequestType selects how long the node holds the
// submission request open.
type ExecuteTransactionRequestType string

const (
	// WaitForEffectsCert returns as soon as the transaction is certified,
	// without waiting for the node to execute it locally.
	WaitForEffectsCert ExecuteTransactionRequestType = "WaitForEffectsCert"
	// WaitForLocalExecution additionally waits until the node has
	// executed the transaction, so follow-up reads observe its effects.
	WaitForLocalExecution ExecuteTransactionRequestType = "WaitForLocalExecution"
)

// SuiTransactionBlockResponseOptions selects which parts of the
// transaction response to populate.
type SuiTransactionBlockResponseOptions struct {
	ShowInput          bool `json:"showInput,omitempty"`
	ShowRawInput       bool `json:"showRawInput,omitempty"`
	ShowEffects        bool `json:"showEffects,omitempty"`
	ShowEvents         bool `json:"showEvents,omitempty"`
	ShowObjectChanges  bool `json:"showObjectChanges,omitempty"`
	ShowBalanceChanges bool `json:"showBalanceChanges,omitempty"`
}

// FullTransactionBlockResponseOptions requests every response section.
func FullTransactionBlockResponseOptions() SuiTransactionBlockResponseOptions {
	return SuiTransactionBlockResponseOptions{
		ShowInput:          true,
		ShowRawInput:       true,
		ShowEffects:        true,
		ShowEvents:         true,
		ShowObjectChanges:  true,
		ShowBalanceChanges: true,
	}
}

// SuiTransactionBlockResponse is returned from transaction submission and
// transaction lookups.
type SuiTransactionBlockResponse struct {
	Digest                  string                   `json:"digest"`
	Effects                 *TransactionBlockEffects `json:"effects,omitempty"`
	ConfirmedLocalExecution *bool                    `json:"confirmedLocalExecution,omitempty"`
	TimestampMs             string                   `json:"timestampMs,omitempty"`
	Checkpoint              string                   `json:"checkpoint,omitempty"`
}

// TransactionBlockEffects is the execution outcome of a transaction.
type TransactionBlockEffects struct {
	MessageVersion string           `json:"messageVersion"`
	Status         ExecutionStatus  `json:"status"`
	ExecutedEpoch  string           `json:"executedEpoch"`
	GasUsed        GasCostSummary   `json:"gasUsed"`
	TransactionDigest string        `json:"transactionDigest"`
	Created        []OwnedObjectRef `json:"created,omitempty"`
	Mutated        []OwnedObjectRef `json:"mutated,omitempty"`
	Deleted        []ObjectRefJSON  `json:"deleted,omitempty"`
	GasObject      *OwnedObjectRef  `json:"gasObject,omitempty"`
	Dependencies   []string         `json:"dependencies,omitempty"`
}

// ExecutionStatus is "success" or "failure" plus the VM abort message on
// failure.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// IsSuccess reports whether the transaction executed successfully.
func (s ExecutionStatus) IsSuccess() bool {
	return s.Status == "success"
}

// GasCostSummary breaks down the gas charged for a transaction.
type GasCostSummary struct {
	ComputationCost         string `json:"computationCost"`
	StorageCost             string `json:"storageCost"`
	StorageRebate           string `json:"storageRebate"`
	NonRefundableStorageFee string `json:"nonRefundableStorageFee"`
}

// ObjectRefJSON is the JSON form of an object reference.
type ObjectRefJSON struct {
	ObjectId string `json:"objectId"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
}

// OwnedObjectRef pairs an object reference with its (possibly new) owner.
type OwnedObjectRef struct {
	Owner     *Owner        `json:"owner,omitempty"`
	Reference ObjectRefJSON `json:"reference"`
}
