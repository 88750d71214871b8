package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/school/classes/model"
)

/* ==============================
   Requests
============================== */

type ClassFeeRuleCreateDTO struct {
	ClassFeeRuleClass             string  `json:"class_fee_rule_class" validate:"required,max=40"`
	ClassFeeRuleTuitionFirstTerm  int     `json:"class_fee_rule_tuition_first_term" validate:"min=0"`
	ClassFeeRuleTuitionSecondTerm int     `json:"class_fee_rule_tuition_second_term" validate:"min=0"`
	ClassFeeRuleTransport         int     `json:"class_fee_rule_transport" validate:"min=0"`
	ClassFeeRuleKit               int     `json:"class_fee_rule_kit" validate:"min=0"`
	ClassFeeRuleNote              *string `json:"class_fee_rule_note,omitempty"`
}

func (in ClassFeeRuleCreateDTO) ToModel() model.ClassFeeRule {
	return model.ClassFeeRule{
		ClassFeeRuleClass:             in.ClassFeeRuleClass,
		ClassFeeRuleTuitionFirstTerm:  in.ClassFeeRuleTuitionFirstTerm,
		ClassFeeRuleTuitionSecondTerm: in.ClassFeeRuleTuitionSecondTerm,
		ClassFeeRuleTransport:         in.ClassFeeRuleTransport,
		ClassFeeRuleKit:               in.ClassFeeRuleKit,
		ClassFeeRuleNote:              in.ClassFeeRuleNote,
	}
}

// Update (partial)
type ClassFeeRuleUpdateDTO struct {
	ClassFeeRuleTuitionFirstTerm  *int    `json:"class_fee_rule_tuition_first_term,omitempty" validate:"omitempty,min=0"`
	ClassFeeRuleTuitionSecondTerm *int    `json:"class_fee_rule_tuition_second_term,omitempty" validate:"omitempty,min=0"`
	ClassFeeRuleTransport         *int    `json:"class_fee_rule_transport,omitempty" validate:"omitempty,min=0"`
	ClassFeeRuleKit               *int    `json:"class_fee_rule_kit,omitempty" validate:"omitempty,min=0"`
	ClassFeeRuleNote              *string `json:"class_fee_rule_note,omitempty"`
}

func ApplyClassFeeRuleUpdate(m *model.ClassFeeRule, in ClassFeeRuleUpdateDTO) {
	if in.ClassFeeRuleTuitionFirstTerm != nil {
		m.ClassFeeRuleTuitionFirstTerm = *in.ClassFeeRuleTuitionFirstTerm
	}
	if in.ClassFeeRuleTuitionSecondTerm != nil {
		m.ClassFeeRuleTuitionSecondTerm = *in.ClassFeeRuleTuitionSecondTerm
	}
	if in.ClassFeeRuleTransport != nil {
		m.ClassFeeRuleTransport = *in.ClassFeeRuleTransport
	}
	if in.ClassFeeRuleKit != nil {
		m.ClassFeeRuleKit = *in.ClassFeeRuleKit
	}
	if in.ClassFeeRuleNote != nil {
		m.ClassFeeRuleNote = in.ClassFeeRuleNote
	}
}

/* ==============================
   Responses
============================== */

type ClassFeeRuleResponse struct {
	ID                uuid.UUID `json:"id"`
	Class             string    `json:"class"`
	TuitionFirstTerm  int       `json:"tuition_first_term"`
	TuitionSecondTerm int       `json:"tuition_second_term"`
	Transport         int       `json:"transport"`
	Kit               int       `json:"kit"`
	Total             int       `json:"total"`
	Note              *string   `json:"note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToClassFeeRuleResponse(m model.ClassFeeRule) ClassFeeRuleResponse {
	return ClassFeeRuleResponse{
		ID:                m.ClassFeeRuleID,
		Class:             m.ClassFeeRuleClass,
		TuitionFirstTerm:  m.ClassFeeRuleTuitionFirstTerm,
		TuitionSecondTerm: m.ClassFeeRuleTuitionSecondTerm,
		Transport:         m.ClassFeeRuleTransport,
		Kit:               m.ClassFeeRuleKit,
		Total:             m.Expected().Total(),
		Note:              m.ClassFeeRuleNote,
		CreatedAt:         m.ClassFeeRuleCreatedAt,
	}
}

func ToClassFeeRuleResponses(list []model.ClassFeeRule) []ClassFeeRuleResponse {
	out := make([]ClassFeeRuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToClassFeeRuleResponse(m))
	}
	return out
}
