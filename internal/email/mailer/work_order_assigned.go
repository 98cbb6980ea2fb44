// internal/email/mailer/work_order_assigned.go
package mailer

import "github.com/dangerclosesec/nexus/internal/email"

// AssignmentTemplateData contains data for the assignment notification
type AssignmentTemplateData struct {
	AssigneeName    string
	WorkOrderNumber string
	Title           string
	AssetName       string
	DueDate         string
	Priority        string
}

// SendWorkOrderAssigned notifies a user that a work order was assigned to them
func SendWorkOrderAssigned(s *email.Service, to string, data AssignmentTemplateData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Nexus",
		Subject:      "Work order " + data.WorkOrderNumber + " assigned to you",
		TemplateName: "work_order_assigned",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
