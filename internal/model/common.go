package model

// MatchStatus 比赛状态枚举
type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchOngoing   MatchStatus = "ongoing"
	MatchCompleted MatchStatus = "completed"
	MatchTie       MatchStatus = "tie"
	MatchVoid      MatchStatus = "void"
)

// matchTransitions 允许的状态流转；completed/tie/void 为终态
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchUpcoming: {MatchOngoing, MatchCompleted, MatchVoid},
	MatchOngoing:  {MatchCompleted, MatchTie, MatchVoid},
}

// Valid 是否为已知状态
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchUpcoming, MatchOngoing, MatchCompleted, MatchTie, MatchVoid:
		return true
	}
	return false
}

// CanTransitionTo 判断 s -> next 是否合法
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, n := range matchTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// LedgerKind 积分来源
type LedgerKind string

const (
	LedgerKindToss  LedgerKind = "toss"
	LedgerKindMatch LedgerKind = "match"
)

const (
	ReasonCorrectToss  = "Correct toss winner prediction"
	ReasonCorrectMatch = "Correct match winner prediction"
	ReasonRevokedToss  = "Toss winner prediction revoked"
	ReasonRevokedMatch = "Match winner prediction revoked"
)

// CreditReason / RevokeReason 按来源返回流水说明
func CreditReason(kind LedgerKind) string {
	if kind == LedgerKindToss {
		return ReasonCorrectToss
	}
	return ReasonCorrectMatch
}

func RevokeReason(kind LedgerKind) string {
	if kind == LedgerKindToss {
		return ReasonRevokedToss
	}
	return ReasonRevokedMatch
}

// TicketStatus 工单状态
type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketResolved TicketStatus = "resolved"
	TicketClosed   TicketStatus = "closed"
)
