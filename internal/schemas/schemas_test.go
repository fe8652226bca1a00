package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func compile(t *testing.T, schemaBytes []byte) *gojsonschema.Schema {
	t.Helper()
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	require.NoError(t, err)
	return schema
}

func TestAllSchemasCompile(t *testing.T) {
	for _, name := range []string{FileCandidateProfile, FileJobRequirements, FileTailoredResume} {
		t.Run(name, func(t *testing.T) {
			compile(t, MustRead(name))
		})
	}
}

func TestCandidateProfileSchemaAcceptsMinimalProfile(t *testing.T) {
	schema := compile(t, CandidateProfile())

	doc := `{
		"contact": {"name": "Alex Applicant", "email": "alex@example.com"},
		"summary": "Backend engineer",
		"skills": ["Go", "Python"],
		"experience": [
			{
				"employer": "Acme",
				"title": "Engineer",
				"start": "2020",
				"end": "2023",
				"bullets": [{"text": "Improved latency by 30%", "evidence": "Improved latency by 30%"}]
			}
		],
		"education": [{"institution": "State University", "degree": "BSc"}]
	}`

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid(), "errors: %v", result.Errors())
}

func TestCandidateProfileSchemaRejectsUnknownFields(t *testing.T) {
	schema := compile(t, CandidateProfile())

	doc := `{
		"contact": {},
		"skills": [],
		"experience": [],
		"education": [],
		"certifications": ["made up"]
	}`

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestJobRequirementsSchemaRequiresAllThreeSets(t *testing.T) {
	schema := compile(t, JobRequirements())

	valid := `{"required_skills": ["Go"], "preferred_skills": [], "keywords": ["go", "grpc"]}`
	result, err := schema.Validate(gojsonschema.NewStringLoader(valid))
	require.NoError(t, err)
	assert.True(t, result.Valid())

	missing := `{"required_skills": ["Go"]}`
	result, err = schema.Validate(gojsonschema.NewStringLoader(missing))
	require.NoError(t, err)
	assert.False(t, result.Valid())
}

func TestTailoredResumeSchemaShape(t *testing.T) {
	schema := compile(t, TailoredResume())

	doc := `{
		"tailored_profile": {
			"contact": {"name": "Alex"},
			"skills": ["Go"],
			"experience": [],
			"education": []
		},
		"unsupported_requirements": ["kubernetes"]
	}`

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid(), "errors: %v", result.Errors())
}
