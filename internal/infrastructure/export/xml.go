package export

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// AuditTrailXML serializa la trilla de auditoría a XML indentado.
//
//	<AuditTrail count="2">
//	  <Event id="..." severity="MEDIUM">
//	    <Operator>...</Operator>
//	    <Action>REGISTER_DISCREPANCY</Action>
//	    <Description>...</Description>
//	    <CreatedAt>2026-01-02T15:04:05Z</CreatedAt>
//	  </Event>
//	</AuditTrail>
func AuditTrailXML(events []*entity.AuditEvent) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("AuditTrail")
	root.CreateAttr("count", strconv.Itoa(len(events)))

	for _, e := range events {
		ev := root.CreateElement("Event")
		ev.CreateAttr("id", e.ID)
		ev.CreateAttr("severity", e.Severity)
		ev.CreateElement("Operator").SetText(e.OperatorID)
		ev.CreateElement("Action").SetText(e.Action)
		ev.CreateElement("Description").SetText(e.Description)
		ev.CreateElement("CreatedAt").SetText(e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}

	doc.Indent(2)
	return doc.WriteToString()
}
