package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

// BuildReminder renders the follow-up message for a case, listing the parties
// whose responses are still outstanding. The text mirrors the operational
// message used by the dashboard.
func BuildReminder(c *Case, assignments []*Assignment) string {
	subject := displayOr(c.RequestSubject)
	docNo := displayOr(c.RequestedDocNo)
	deadline := formatDate(c.RequestDeadline)

	var pending []string
	for _, a := range assignments {
		if a.Status != types.AssignmentStatusResponded {
			pending = append(pending, "- "+a.Name)
		}
	}
	pendingTxt := "- (nenhum)"
	if len(pending) > 0 {
		pendingTxt = strings.Join(pending, "\n")
	}

	return fmt.Sprintf(
		"🚨 Atenção!\n\n"+
			"Solicito verificar a situação do retorno referente a seguinte solicitação:\n\n"+
			"📌 Assunto: %s\n"+
			"📄 Nr Doc: %s\n"+
			"⏳ Prazo: %s\n\n"+
			"👥 Pendentes:\n%s\n",
		subject, docNo, deadline, pendingTxt)
}

func displayOr(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == BlankFieldMark {
		return "-"
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}
