package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// ContractEventMessage is a lightweight change notification. It carries
// only the contract id and action; consumers fetch the full contract
// themselves.
type ContractEventMessage struct {
	ContractID string    `json:"contractId"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewContractEventMessage(contractID, action string) *ContractEventMessage {
	return &ContractEventMessage{
		ContractID: contractID,
		Action:     action,
		Timestamp:  time.Now(),
	}
}

func (m *ContractEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ContractEventMessageFromJSON(data []byte) (*ContractEventMessage, error) {
	var msg ContractEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
