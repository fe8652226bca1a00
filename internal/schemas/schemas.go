// Package schemas embeds the JSON Schema documents that define the output
// contract for every generation backend call.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema file names.
const (
	FileCandidateProfile = "candidate_profile.schema.json"
	FileJobRequirements  = "job_requirements.schema.json"
	FileTailoredResume   = "tailored_resume.schema.json"
)

// MustRead returns the raw bytes of an embedded schema file, panicking if it
// does not exist. Schema files are compiled into the binary, so a miss is a
// build defect, not a runtime condition.
func MustRead(name string) []byte {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("embedded schema %s not found: %v", name, err))
	}
	return data
}

// CandidateProfile returns the schema for structured profile extraction.
func CandidateProfile() []byte {
	return MustRead(FileCandidateProfile)
}

// JobRequirements returns the schema for job description analysis.
func JobRequirements() []byte {
	return MustRead(FileJobRequirements)
}

// TailoredResume returns the schema for the tailoring engine response.
func TailoredResume() []byte {
	return MustRead(FileTailoredResume)
}
