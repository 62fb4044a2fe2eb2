package ids

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the entity kind an identifier belongs to.
type Kind string

const (
	User      Kind = "user"
	Container Kind = "container"
	AssetType Kind = "assetType"
	SubType   Kind = "subtype"
	Field     Kind = "field"
	Asset     Kind = "asset"
)

// Every id is a hyphen-delimited ancestry chain: each segment pair is a
// single-letter kind marker followed by an alphanumeric token. An id therefore
// encodes the full path to its owner and parsing it recovers every ancestor id
// without a lookup.
var markers = map[Kind]string{
	User:      "u",
	Container: "c",
	AssetType: "t",
	SubType:   "s",
	Field:     "f",
	Asset:     "a",
}

var kindsByMarker = map[string]Kind{
	"u": User,
	"c": Container,
	"t": AssetType,
	"s": SubType,
	"f": Field,
	"a": Asset,
}

const token = `[a-zA-Z0-9]+`

var patterns = map[Kind]*regexp.Regexp{
	User:      regexp.MustCompile(`^u-` + token + `$`),
	Container: regexp.MustCompile(`^u-` + token + `-c-` + token + `$`),
	AssetType: regexp.MustCompile(`^u-` + token + `-c-` + token + `-t-` + token + `$`),
	SubType:   regexp.MustCompile(`^u-` + token + `-c-` + token + `-t-` + token + `-s-` + token + `$`),
	// Fields hang off either an asset type or a subtype.
	Field: regexp.MustCompile(`^u-` + token + `-c-` + token + `-t-` + token + `(-s-` + token + `)?-f-` + token + `$`),
	// Assets chain directly off the container, not the type. Re-typing an
	// asset must never change its id.
	Asset: regexp.MustCompile(`^u-` + token + `-c-` + token + `-a-` + token + `$`),
}

// parentKinds lists the kinds a parent id may validate as when generating a
// child id of the given kind.
var parentKinds = map[Kind][]Kind{
	Container: {User},
	AssetType: {Container},
	SubType:   {AssetType},
	Field:     {AssetType, SubType},
	Asset:     {Container},
}

// MalformedIDError reports an id that does not validate for the kind it was
// used as. The API boundary treats it like a validation failure.
type MalformedIDError struct {
	ID   string
	Kind Kind
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed %s id: %q", e.Kind, e.ID)
}

// NewToken returns a fresh alphanumeric token. Tokens must not contain
// hyphens, which delimit id segments, so the UUID's hyphens are stripped.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Generate mints a new identifier of the given kind under parentID. For User
// the parent must be empty; for every other kind the parent must validate as
// the kind's expected parent.
func Generate(kind Kind, parentID string) (string, error) {
	if kind == User {
		if parentID != "" {
			return "", &MalformedIDError{ID: parentID, Kind: User}
		}
		return "u-" + NewToken(), nil
	}

	marker, ok := markers[kind]
	if !ok {
		return "", fmt.Errorf("unknown id kind: %q", kind)
	}

	valid := false
	for _, pk := range parentKinds[kind] {
		if Validate(parentID, pk) {
			valid = true
			break
		}
	}
	if !valid {
		return "", &MalformedIDError{ID: parentID, Kind: parentKinds[kind][0]}
	}

	return parentID + "-" + marker + "-" + NewToken(), nil
}

// Validate reports whether id matches the fixed shape for the given kind.
// An id missing a required trailing segment (a container id passed where an
// asset type id is required) does not validate.
func Validate(id string, kind Kind) bool {
	re, ok := patterns[kind]
	if !ok {
		return false
	}
	return re.MatchString(id)
}

// Ancestry maps each kind found in an id to that ancestor's full id-prefix.
type Ancestry map[Kind]string

// Parse splits an id into its ancestry. It fails closed: on malformed input
// it returns whatever prefix parsed cleanly, possibly an empty map, and never
// returns an error. Callers wanting strict checking use Validate.
func Parse(id string) Ancestry {
	ancestry := Ancestry{}
	segments := strings.Split(id, "-")

	var prev Kind
	for i := 0; i+1 < len(segments); i += 2 {
		kind, ok := kindsByMarker[segments[i]]
		if !ok || !tokenOK(segments[i+1]) {
			break
		}
		if !follows(kind, prev) {
			break
		}
		prefix := strings.Join(segments[:i+2], "-")
		ancestry[kind] = prefix
		prev = kind
	}
	return ancestry
}

// follows reports whether a segment of kind may directly follow one of prev
// in the marker chain. The zero Kind stands for the start of the id.
func follows(kind, prev Kind) bool {
	switch kind {
	case User:
		return prev == ""
	case Container:
		return prev == User
	case AssetType, Asset:
		return prev == Container
	case SubType:
		return prev == AssetType
	case Field:
		return prev == AssetType || prev == SubType
	}
	return false
}

var tokenRe = regexp.MustCompile(`^` + token + `$`)

func tokenOK(s string) bool {
	return tokenRe.MatchString(s)
}
