package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// TimestampType is the discriminant sent as timestamp_type. The numbering is
// fixed by the client API; 2 is unused there and must stay unused here.
type TimestampType int

const (
	TimestampWebDomain              TimestampType = 0
	TimestampFileModified           TimestampType = 1
	TimestampFileImported           TimestampType = 3
	TimestampFileDeleted            TimestampType = 4
	TimestampArchived               TimestampType = 5
	TimestampLastViewed             TimestampType = 6
	TimestampFileOriginallyImported TimestampType = 7
)

func (t TimestampType) String() string {
	switch t {
	case TimestampWebDomain:
		return "web domain"
	case TimestampFileModified:
		return "file modified"
	case TimestampFileImported:
		return "file imported"
	case TimestampFileDeleted:
		return "file deleted"
	case TimestampArchived:
		return "archived"
	case TimestampLastViewed:
		return "last viewed"
	case TimestampFileOriginallyImported:
		return "file originally imported"
	default:
		return "timestamp type " + strconv.Itoa(int(t))
	}
}

// DbTimeRequestType selects which file-service event time a DbTime request
// edits.
type DbTimeRequestType int

const (
	DbFileImportedTime DbTimeRequestType = iota
	DbFileDeletedTime
	DbFileOriginallyImportedTime
)

// TimestampType maps the sub-type onto its wire discriminant. Values outside
// the declared constants fall back to TimestampFileImported.
func (d DbTimeRequestType) TimestampType() TimestampType {
	switch d {
	case DbFileImportedTime:
		return TimestampFileImported
	case DbFileDeletedTime:
		return TimestampFileDeleted
	case DbFileOriginallyImportedTime:
		return TimestampFileOriginallyImported
	default:
		return TimestampFileImported
	}
}

func (d DbTimeRequestType) String() string {
	switch d {
	case DbFileImportedTime, DbFileDeletedTime, DbFileOriginallyImportedTime:
		return d.TimestampType().String()
	default:
		return "db time request type " + strconv.Itoa(int(d))
	}
}

// Canvas types accepted by LastViewedTime.
const (
	CanvasMediaViewer uint64 = 0
	CanvasPreview     uint64 = 1
	CanvasClientAPI   uint64 = 4
)

// timeTarget holds the fields every set-time variant shares.
type timeTarget struct {
	hashes    []string
	timestamp *string
}

func (t *timeTarget) addHashes(hashes ...string) {
	t.hashes = append(t.hashes, hashes...)
}

func (t *timeTarget) setTimestamp(value *string) {
	t.timestamp = value
}

// Hashes returns a copy of the targeted file hashes.
func (t timeTarget) Hashes() []string {
	return append([]string(nil), t.hashes...)
}

// Timestamp returns the timestamp in milliseconds and whether one is set.
func (t timeTarget) Timestamp() (string, bool) {
	if t.timestamp == nil {
		return "", false
	}
	return *t.timestamp, true
}

func (t *timeTarget) target() *timeTarget { return t }

func (t timeTarget) cloneTarget() timeTarget {
	c := timeTarget{hashes: append([]string(nil), t.hashes...)}
	if t.timestamp != nil {
		ts := *t.timestamp
		c.timestamp = &ts
	}
	return c
}

// SetTimeVariant is one of the five set-time request shapes: *WebDomainTime,
// *DiskTime, *DbTime, *ArchivedTime or *LastViewedTime. The set is closed.
type SetTimeVariant interface {
	Hashes() []string
	Timestamp() (string, bool)

	timestampType() TimestampType
	wireFields(fields map[string]any)
	target() *timeTarget
	clone() SetTimeVariant
}

// WebDomainTime edits the last-visited time of a web domain.
type WebDomainTime struct {
	timeTarget
	Domain string
}

// DiskTime edits the file-modified-on-disk time.
type DiskTime struct {
	timeTarget
}

// DbTime edits an import, deletion or original-import time on a file service.
type DbTime struct {
	timeTarget
	RequestType    DbTimeRequestType
	FileServiceKey string
}

// ArchivedTime edits the time a file was archived.
type ArchivedTime struct {
	timeTarget
}

// LastViewedTime edits the last-viewed time on a canvas.
type LastViewedTime struct {
	timeTarget
	CanvasType uint64
}

func (*WebDomainTime) timestampType() TimestampType  { return TimestampWebDomain }
func (*DiskTime) timestampType() TimestampType       { return TimestampFileModified }
func (v *DbTime) timestampType() TimestampType       { return v.RequestType.TimestampType() }
func (*ArchivedTime) timestampType() TimestampType   { return TimestampArchived }
func (*LastViewedTime) timestampType() TimestampType { return TimestampLastViewed }

func (v *WebDomainTime) wireFields(fields map[string]any)  { fields["domain"] = v.Domain }
func (*DiskTime) wireFields(map[string]any)                {}
func (v *DbTime) wireFields(fields map[string]any)         { fields["file_service_key"] = v.FileServiceKey }
func (*ArchivedTime) wireFields(map[string]any)            {}
func (v *LastViewedTime) wireFields(fields map[string]any) { fields["canvas_type"] = v.CanvasType }

func (v *WebDomainTime) clone() SetTimeVariant {
	return &WebDomainTime{timeTarget: v.timeTarget.cloneTarget(), Domain: v.Domain}
}

func (v *DiskTime) clone() SetTimeVariant {
	return &DiskTime{timeTarget: v.timeTarget.cloneTarget()}
}

func (v *DbTime) clone() SetTimeVariant {
	return &DbTime{timeTarget: v.timeTarget.cloneTarget(), RequestType: v.RequestType, FileServiceKey: v.FileServiceKey}
}

func (v *ArchivedTime) clone() SetTimeVariant {
	return &ArchivedTime{timeTarget: v.timeTarget.cloneTarget()}
}

func (v *LastViewedTime) clone() SetTimeVariant {
	return &LastViewedTime{timeTarget: v.timeTarget.cloneTarget(), CanvasType: v.CanvasType}
}

// TimestampTypeOf returns the discriminant that must accompany v on the wire.
func TimestampTypeOf(v SetTimeVariant) TimestampType {
	return v.timestampType()
}

// SetTimeRequest is a finalised edit_times/set_time request. It is produced
// by SetTimeRequestBuilder.Build and not modified afterwards.
type SetTimeRequest struct {
	timestampType TimestampType
	variant       SetTimeVariant
}

// TimestampType returns the wire discriminant.
func (r SetTimeRequest) TimestampType() TimestampType { return r.timestampType }

// Variant returns a copy of the request shape for type switches. Changing
// the copy does not affect r.
func (r SetTimeRequest) Variant() SetTimeVariant {
	if r.variant == nil {
		return nil
	}
	return r.variant.clone()
}

// Hashes returns a copy of the targeted file hashes.
func (r SetTimeRequest) Hashes() []string {
	if r.variant == nil {
		return nil
	}
	return r.variant.Hashes()
}

// Timestamp returns the timestamp in milliseconds and whether one is set.
func (r SetTimeRequest) Timestamp() (string, bool) {
	if r.variant == nil {
		return "", false
	}
	return r.variant.Timestamp()
}

// MarshalJSON merges the discriminant and the variant's fields into a single
// flat object. An unset timestamp is omitted rather than sent as null.
func (r SetTimeRequest) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"timestamp_type": int(r.timestampType),
	}
	hashes := []string{}
	if r.variant != nil {
		fields["timestamp_type"] = int(TimestampTypeOf(r.variant))
		target := r.variant.target()
		if target.hashes != nil {
			hashes = target.hashes
		}
		if target.timestamp != nil {
			fields["timestamp_ms"] = *target.timestamp
		}
		r.variant.wireFields(fields)
	}
	fields["hashes"] = hashes
	return json.Marshal(fields)
}

// SetTimeRequestBuilder assembles a SetTimeRequest. Builders are single-use:
// Build hands the collected state to the request, after which further
// mutations are ignored and Build fails with ErrBuilderConsumed.
type SetTimeRequestBuilder struct {
	variant SetTimeVariant
}

// SetWebDomainTime starts a request for a web domain's last-visited time.
func SetWebDomainTime(domain string) *SetTimeRequestBuilder {
	return &SetTimeRequestBuilder{variant: &WebDomainTime{Domain: domain}}
}

// SetDiskTime starts a request for the file-modified-on-disk time.
func SetDiskTime() *SetTimeRequestBuilder {
	return &SetTimeRequestBuilder{variant: &DiskTime{}}
}

// SetDbTime starts a request for an import, deletion or original-import time
// on the given file service.
func SetDbTime(kind DbTimeRequestType, fileServiceKey string) *SetTimeRequestBuilder {
	return &SetTimeRequestBuilder{variant: &DbTime{RequestType: kind, FileServiceKey: fileServiceKey}}
}

// SetArchivedTime starts a request for the archived time.
func SetArchivedTime() *SetTimeRequestBuilder {
	return &SetTimeRequestBuilder{variant: &ArchivedTime{}}
}

// SetLastViewedTime starts a request for the last-viewed time on a canvas.
func SetLastViewedTime(canvasType uint64) *SetTimeRequestBuilder {
	return &SetTimeRequestBuilder{variant: &LastViewedTime{CanvasType: canvasType}}
}

// AddHash appends one file hash.
func (b *SetTimeRequestBuilder) AddHash(hash string) *SetTimeRequestBuilder {
	return b.AddHashes([]string{hash})
}

// AddHashes appends file hashes in order. Duplicates are kept.
func (b *SetTimeRequestBuilder) AddHashes(hashes []string) *SetTimeRequestBuilder {
	if b.variant != nil {
		b.variant.target().addHashes(hashes...)
	}
	return b
}

// SetTimestamp stores a timestamp in milliseconds, already formatted.
func (b *SetTimeRequestBuilder) SetTimestamp(ms string) *SetTimeRequestBuilder {
	if b.variant != nil {
		b.variant.target().setTimestamp(&ms)
	}
	return b
}

// SetTime stores t as unix milliseconds.
func (b *SetTimeRequestBuilder) SetTime(t time.Time) *SetTimeRequestBuilder {
	return b.SetTimestamp(strconv.FormatInt(t.UnixMilli(), 10))
}

// ClearTimestamp removes a previously set timestamp so the field is omitted.
func (b *SetTimeRequestBuilder) ClearTimestamp() *SetTimeRequestBuilder {
	if b.variant != nil {
		b.variant.target().setTimestamp(nil)
	}
	return b
}

// Build finalises the request. It may be called once.
func (b *SetTimeRequestBuilder) Build() (SetTimeRequest, error) {
	if b.variant == nil {
		return SetTimeRequest{}, ErrBuilderConsumed
	}
	v := b.variant
	b.variant = nil
	return SetTimeRequest{timestampType: TimestampTypeOf(v), variant: v}, nil
}

// SetTime is edit_times/set_time.
var SetTime = Endpoint[SetTimeRequest, Empty]{Method: http.MethodPost, Path: "edit_times/set_time"}
