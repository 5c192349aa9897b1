// Package fallback implements the deterministic keyword retriever used when
// semantic retrieval is unavailable: provider down, index missing, or an
// empty knowledge base. It has no external dependencies and never fails,
// making it the safety net of the retrieval pipeline.
package fallback

import (
	"log/slog"
	"os"
	"regexp"
)

// Example is a question/query reference pair. Ordering within the parsed
// sequence is significant: the keyword rule table addresses examples by
// position.
type Example struct {
	Query  string
	SPARQL string
}

// One reference block is a markdown heading holding the natural-language
// question, followed by a fenced sparql snippet before the next heading.
// The document is segmented on headings first so a heading without a fence
// cannot capture the next block's query.
var (
	exampleHeading = regexp.MustCompile(`(?m)^##[ \t]+(.+?)[ \t]*$`)
	sparqlFence    = regexp.MustCompile("(?s)```sparql\\s*\\n(.*?)```")
)

// ParseExamples extracts Example pairs from a reference document.
// Parsing is best-effort: malformed blocks are simply not included, and an
// empty or unrecognizable document yields an empty sequence.
func ParseExamples(src string) []Example {
	headings := exampleHeading.FindAllStringSubmatchIndex(src, -1)
	if len(headings) == 0 {
		return nil
	}

	var examples []Example
	for i, h := range headings {
		end := len(src)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}

		query := src[h[2]:h[3]]
		fence := sparqlFence.FindStringSubmatch(src[h[1]:end])
		if fence == nil || fence[1] == "" {
			continue
		}
		examples = append(examples, Example{Query: query, SPARQL: fence[1]})
	}
	return examples
}

// LoadExamples parses the reference document at path. An absent or unreadable
// file is recoverable: the built-in reference set is returned instead, with a
// warning logged.
func LoadExamples(path string, logger *slog.Logger) []Example {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("example reference document unavailable, using built-in set",
			"path", path,
			"error", err)
		return ParseExamples(builtinReference)
	}

	examples := ParseExamples(string(data))
	if len(examples) == 0 {
		logger.Warn("example reference document yielded no examples, using built-in set",
			"path", path)
		return ParseExamples(builtinReference)
	}

	return examples
}

// builtinReference is the reference document shipped with the binary, in the
// same format LoadExamples expects on disk. The keyword rule table addresses
// examples by the order defined here.
const builtinReference = "# SPARQL reference examples\n" +
	"\n" +
	"## ¿Qué datasets hay sobre salud?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:theme <http://datos.gob.es/kos/sector-publico/sector/salud> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Cuántos datasets hay sobre hospitales?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT (COUNT(DISTINCT ?dataset) AS ?total) WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title .\n" +
	"  FILTER(CONTAINS(LCASE(STR(?title)), \"hospital\"))\n" +
	"}\n" +
	"LIMIT 1\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets hay sobre educación?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:theme <http://datos.gob.es/kos/sector-publico/sector/educacion> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets hay sobre calidad del aire?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title .\n" +
	"  FILTER(CONTAINS(LCASE(STR(?title)), \"aire\"))\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets hay sobre medio ambiente?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:theme <http://datos.gob.es/kos/sector-publico/sector/medio-ambiente> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets hay sobre transporte público?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:theme <http://datos.gob.es/kos/sector-publico/sector/transporte> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets publican presupuestos municipales?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title .\n" +
	"  FILTER(CONTAINS(LCASE(STR(?title)), \"presupuesto\"))\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets hay sobre empleo?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:theme <http://datos.gob.es/kos/sector-publico/sector/empleo> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué datasets están disponibles en formato CSV?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"SELECT DISTINCT ?dataset ?title WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:title ?title ;\n" +
	"           dcat:distribution ?dist .\n" +
	"  ?dist dct:format <http://publications.europa.eu/resource/authority/file-type/CSV> .\n" +
	"}\n" +
	"LIMIT 10\n" +
	"```\n" +
	"\n" +
	"## ¿Qué organismos publican más datasets?\n" +
	"\n" +
	"```sparql\n" +
	"PREFIX dcat: <http://www.w3.org/ns/dcat#>\n" +
	"PREFIX dct: <http://purl.org/dc/terms/>\n" +
	"PREFIX foaf: <http://xmlns.com/foaf/0.1/>\n" +
	"SELECT ?publisher (COUNT(?dataset) AS ?total) WHERE {\n" +
	"  ?dataset a dcat:Dataset ;\n" +
	"           dct:publisher ?publisher .\n" +
	"}\n" +
	"GROUP BY ?publisher\n" +
	"ORDER BY DESC(?total)\n" +
	"LIMIT 10\n" +
	"```\n"
