package types

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKey is a composite event attribute key (<event>.<attribute>).
type EventKey string

const (
	EventKeyAction    EventKey = "message.action"
	EventKeyModule    EventKey = "message.module"
	EventKeySender    EventKey = "message.sender"
	EventKeyRecipient EventKey = "transfer.recipient"
	EventKeyTxHeight  EventKey = "tx.height"
	EventKeyTxHash    EventKey = "tx.hash"
)

// Message actions as emitted by gaia for the registered messages.
const (
	EventActionSend                        = "/cosmos.bank.v1beta1.MsgSend"
	EventActionMultiSend                   = "/cosmos.bank.v1beta1.MsgMultiSend"
	EventActionDelegate                    = "/cosmos.staking.v1beta1.MsgDelegate"
	EventActionUndelegate                  = "/cosmos.staking.v1beta1.MsgUndelegate"
	EventActionBeginRedelegate             = "/cosmos.staking.v1beta1.MsgBeginRedelegate"
	EventActionWithdrawDelegatorReward     = "/cosmos.distribution.v1beta1.MsgWithdrawDelegatorReward"
	EventActionSetWithdrawAddress          = "/cosmos.distribution.v1beta1.MsgSetWithdrawAddress"
	EventActionWithdrawValidatorCommission = "/cosmos.distribution.v1beta1.MsgWithdrawValidatorCommission"
	EventActionFundCommunityPool           = "/cosmos.distribution.v1beta1.MsgFundCommunityPool"
)

// Condition is a single comparison of an event query.
type Condition struct {
	key   EventKey
	op    string
	value string
}

// NewCond starts a condition on key. Finish it with one of the operators.
func NewCond(key EventKey) *Condition {
	return &Condition{key: key}
}

func (c *Condition) EQ(value string) *Condition {
	return c.set("=", quote(value))
}

func (c *Condition) Contains(value string) *Condition {
	return c.set("CONTAINS", quote(value))
}

func (c *Condition) GT(value int64) *Condition {
	return c.set(">", strconv.FormatInt(value, 10))
}

func (c *Condition) GTE(value int64) *Condition {
	return c.set(">=", strconv.FormatInt(value, 10))
}

func (c *Condition) LT(value int64) *Condition {
	return c.set("<", strconv.FormatInt(value, 10))
}

func (c *Condition) LTE(value int64) *Condition {
	return c.set("<=", strconv.FormatInt(value, 10))
}

// Exists matches events that carry the key regardless of value.
func (c *Condition) Exists() *Condition {
	return c.set("EXISTS", "")
}

func (c *Condition) set(op, value string) *Condition {
	c.op = op
	c.value = value
	return c
}

// String renders the condition in CometBFT query syntax.
func (c *Condition) String() string {
	if c.op == "" {
		return ""
	}
	if c.op == "EXISTS" {
		return fmt.Sprintf("%s EXISTS", c.key)
	}

	return fmt.Sprintf("%s %s %s", c.key, c.op, c.value)
}

func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}

// EventQueryBuilder joins conditions with AND.
type EventQueryBuilder struct {
	conditions []*Condition
}

func NewEventQueryBuilder() *EventQueryBuilder {
	return &EventQueryBuilder{}
}

// AddCondition appends a condition; conditions without an operator are skipped.
func (b *EventQueryBuilder) AddCondition(c *Condition) *EventQueryBuilder {
	if c != nil && c.op != "" {
		b.conditions = append(b.conditions, c)
	}
	return b
}

// Build renders the query. An empty builder renders an empty string.
func (b *EventQueryBuilder) Build() string {
	parts := make([]string, 0, len(b.conditions))
	for _, c := range b.conditions {
		parts = append(parts, c.String())
	}

	return strings.Join(parts, " AND ")
}
