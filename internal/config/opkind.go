package config

// OpKind represents a container operation a script can perform.
type OpKind int

const (
	// OpNew replaces the container with a fresh one.
	OpNew OpKind = iota
	OpAppend
	OpInsert
	OpRemoveAt
	OpRemove
	OpGet
	OpSet
	OpIndexOf
	// OpLength reports the capacity, like Container.Length.
	OpLength
	// OpLen reports the number of occupied slots.
	OpLen
	OpCap
	OpRender
	OpDump
)

var opKeywords = [...]string{
	OpNew:      "new",
	OpAppend:   "append",
	OpInsert:   "insert",
	OpRemoveAt: "remove-at",
	OpRemove:   "remove",
	OpGet:      "get",
	OpSet:      "set",
	OpIndexOf:  "index-of",
	OpLength:   "length",
	OpLen:      "len",
	OpCap:      "cap",
	OpRender:   "render",
	OpDump:     "dump",
}

// String returns the script keyword of the operation.
func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKeywords) {
		return "unknown operation"
	}
	return opKeywords[k]
}

// ParseOpKind returns the operation for a script keyword.
func ParseOpKind(keyword string) (OpKind, bool) {
	for k, kw := range opKeywords {
		if kw == keyword {
			return OpKind(k), true
		}
	}
	return 0, false
}
