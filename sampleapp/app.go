// Package sampleapp is a small in-memory REST service that follows the conventions checked by
// the resttest package. It is used to test the helper itself and to demonstrate the contract
// test runner.
package sampleapp

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultRootURI   = "/v1"
	DefaultResource  = "users"
	DefaultExtension = ".json"
)

// Options configures an App. Empty fields get the defaults above; Extension can only be
// disabled by setting NoExtension.
type Options struct {
	RootURI     string
	Resource    string
	Extension   string
	NoExtension bool

	// Validate returns field errors for a create or update payload. If it is nil, every item
	// must have an "email" field containing "@".
	Validate func(fields url.Values) map[string]string
}

// App serves a single collection resource:
//
//	GET    {root}/{resource}{ext}?offset=N&length=N   list, wrapped in the query envelope
//	POST   {root}/{resource}{ext}                     create; 201 with a Location header
//	GET    {root}/{resource}/{id}{ext}                read
//	PUT    {root}/{resource}/{id}{ext}                update; 204
//	DELETE {root}/{resource}/{id}{ext}                delete; 204
//
// Items are stored as flat string maps in insertion order.
type App struct {
	opts   Options
	lock   sync.Mutex
	items  map[int]map[string]string
	order  []int
	lastID int
}

func New(opts Options) *App {
	if opts.RootURI == "" {
		opts.RootURI = DefaultRootURI
	}
	if opts.Resource == "" {
		opts.Resource = DefaultResource
	}
	if opts.Extension == "" && !opts.NoExtension {
		opts.Extension = DefaultExtension
	}
	if opts.NoExtension {
		opts.Extension = ""
	}
	if opts.Validate == nil {
		opts.Validate = requireEmail
	}
	return &App{opts: opts, items: make(map[int]map[string]string)}
}

func requireEmail(fields url.Values) map[string]string {
	if !strings.Contains(fields.Get("email"), "@") {
		return map[string]string{"email": "is invalid"}
	}
	return nil
}

// Count returns the number of stored items.
func (a *App) Count() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.order)
}

// Add stores an item directly and returns its ID, bypassing validation.
func (a *App) Add(fields map[string]string) int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.add(fields)
}

func (a *App) add(fields map[string]string) int {
	a.lastID++
	item := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		item[k] = v
	}
	item["id"] = strconv.Itoa(a.lastID)
	a.items[a.lastID] = item
	a.order = append(a.order, a.lastID)
	return a.lastID
}

func (a *App) collectionPath() string {
	return strings.TrimSuffix(a.opts.RootURI, "/") + "/" + a.opts.Resource
}

func (a *App) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	base := a.collectionPath()
	p := req.URL.Path
	if a.opts.Extension != "" {
		if !strings.HasSuffix(p, a.opts.Extension) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		p = strings.TrimSuffix(p, a.opts.Extension)
	}

	if p == base {
		switch req.Method {
		case http.MethodGet:
			a.list(w, req)
		case http.MethodPost:
			a.create(w, req)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	idStr := strings.TrimPrefix(p, base+"/")
	id, err := strconv.Atoi(idStr)
	if idStr == p || err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch req.Method {
	case http.MethodGet:
		a.read(w, id)
	case http.MethodPut:
		a.update(w, req, id)
	case http.MethodDelete:
		a.delete(w, id)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *App) list(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	offset, ok := queryInt(query, "offset", 0)
	if !ok || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	length, ok := queryInt(query, "length", -1)
	if !ok || length < -1 {
		writeError(w, http.StatusBadRequest, "length must be a non-negative integer")
		return
	}

	a.lock.Lock()
	total := len(a.order)
	end := total
	if length >= 0 && offset+length < end {
		end = offset + length
	}
	page := ldvalue.ArrayBuild()
	for i := offset; i < end; i++ {
		page.Add(itemValue(a.items[a.order[i]]))
	}
	a.lock.Unlock()

	returned := end - offset
	if returned < 0 {
		returned = 0
	}
	body := ldvalue.ObjectBuild().
		Set(a.opts.Resource, page.Build()).
		Set("query", ldvalue.ObjectBuild().
			Set("found", ldvalue.Int(total)).
			Set("total", ldvalue.Int(total)).
			Set("length", ldvalue.Int(returned)).
			Set("offset", ldvalue.Int(offset)).
			Build()).
		Build()
	writeJSON(w, http.StatusOK, body)
}

func (a *App) create(w http.ResponseWriter, req *http.Request) {
	fields, ok := readForm(w, req)
	if !ok {
		return
	}
	if errs := a.opts.Validate(fields); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	a.lock.Lock()
	id := a.add(flatten(fields))
	item := itemValue(a.items[id])
	a.lock.Unlock()

	w.Header().Set("Location", a.collectionPath()+"/"+strconv.Itoa(id)+a.opts.Extension)
	writeJSON(w, http.StatusCreated, item)
}

func (a *App) read(w http.ResponseWriter, id int) {
	a.lock.Lock()
	item, found := a.items[id]
	var value ldvalue.Value
	if found {
		value = itemValue(item)
	}
	a.lock.Unlock()
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (a *App) update(w http.ResponseWriter, req *http.Request, id int) {
	fields, ok := readForm(w, req)
	if !ok {
		return
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	item, found := a.items[id]
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	merged := make(url.Values)
	for k, v := range item {
		merged.Set(k, v)
	}
	for k, v := range fields {
		merged[k] = v
	}
	if errs := a.opts.Validate(merged); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	for k, v := range flatten(fields) {
		if k != "id" {
			item[k] = v
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) delete(w http.ResponseWriter, id int) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if _, found := a.items[id]; !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	delete(a.items, id)
	for i, existing := range a.order {
		if existing == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func readForm(w http.ResponseWriter, req *http.Request) (url.Values, bool) {
	if err := req.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return nil, false
	}
	return req.PostForm, true
}

func queryInt(query url.Values, name string, defaultValue int) (int, bool) {
	s := query.Get(name)
	if s == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func flatten(fields url.Values) map[string]string {
	ret := make(map[string]string, len(fields))
	for k := range fields {
		ret[k] = fields.Get(k)
	}
	return ret
}

func itemValue(item map[string]string) ldvalue.Value {
	keys := make([]string, 0, len(item))
	for k := range item {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := ldvalue.ObjectBuild()
	for _, k := range keys {
		if k == "id" {
			n, _ := strconv.Atoi(item[k])
			b.Set(k, ldvalue.Int(n))
		} else {
			b.Set(k, ldvalue.String(item[k]))
		}
	}
	return b.Build()
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ldvalue.ObjectBuild().Set("error", ldvalue.String(message)).Build())
}

func writeValidationErrors(w http.ResponseWriter, errs map[string]string) {
	fields := ldvalue.ObjectBuild()
	for k, v := range errs {
		fields.Set(k, ldvalue.String(v))
	}
	writeJSON(w, http.StatusBadRequest, ldvalue.ObjectBuild().Set("errors", fields.Build()).Build())
}

func writeJSON(w http.ResponseWriter, status int, value ldvalue.Value) {
	data := []byte(value.JSONString())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
