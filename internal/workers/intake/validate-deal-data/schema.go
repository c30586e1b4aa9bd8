// internal/workers/intake/validate-deal-data/schema.go
package validatedealdata

const schemaVersion = "1.0.0"

// dealSchema is the intake contract. Optional fields missing here are
// defaulted downstream by the intake adapter, not rejected.
const dealSchema = `{
	"type": "object",
	"required": ["id", "projectName", "projectType", "state", "totalProjectCost"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"projectName": {"type": "string", "minLength": 1},
		"projectType": {"type": "string", "minLength": 1},
		"sponsorName": {"type": "string"},
		"address": {"type": "string"},
		"city": {"type": "string"},
		"state": {"type": "string", "pattern": "^[A-Z]{2}$"},
		"zip": {"type": "string"},
		"censusTract": {"type": "string"},
		"tractPovertyRate": {"type": "number", "minimum": 0, "maximum": 100},
		"tractMfiRatio": {"type": "number", "minimum": 0},
		"tractUnemployment": {"type": "number", "minimum": 0, "maximum": 100},
		"tractTypes": {"type": "array", "items": {"type": "string"}},
		"tractEligible": {"type": "boolean"},
		"ddaDesignated": {"type": "boolean"},
		"isRural": {"type": "boolean"},
		"totalProjectCost": {"type": "number", "minimum": 0},
		"committedCapitalPct": {"type": "number", "minimum": 0, "maximum": 100},
		"allocationRequested": {"type": "number", "minimum": 0},
		"jobsCreated": {"type": "integer", "minimum": 0},
		"jobsRetained": {"type": "integer", "minimum": 0},
		"housingUnits": {"type": "integer", "minimum": 0},
		"affordableHousingUnits": {"type": "integer", "minimum": 0},
		"siteControl": {"type": "string", "enum": ["", "owned", "under_contract", "option", "loi", "none"]},
		"proFormaComplete": {"type": "boolean"},
		"thirdPartyReports": {"type": "boolean"},
		"approvalStatus": {"type": "string", "enum": ["", "approved", "submitted", "started", "none"]},
		"projectedStartDate": {"type": "string", "format": "date-time"},
		"projectedCompletionDate": {"type": "string", "format": "date-time"},
		"targetSectors": {"type": "array", "items": {"type": "string"}}
	}
}`
