package store

const (
	saveDocumentQuery = `
		MERGE (d:Document {uuid: $uuid})
		SET d.text = $text,
			d.created_at = $created_at
		RETURN d.uuid AS uuid
	`

	saveMentionQuery = `
		MATCH (d:Document {uuid: $doc_uuid})
		MERGE (e:Entity {text: $text, label: $label})
		MERGE (d)-[m:MENTIONS {start: $start, end: $end}]->(e)
		SET m.created_at = $created_at
		RETURN e.text AS text
	`

	entitiesByLabelQuery = `
		MATCH (e:Entity {label: $label})
		RETURN DISTINCT e.text AS text
		ORDER BY text
	`
)
