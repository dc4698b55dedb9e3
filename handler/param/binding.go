package param

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

// Binding bind query values and the json body into object, then run the
// valid tag checks
func Binding(r *http.Request, object interface{}) error {
	if err := decoder.Decode(object, r.URL.Query()); err != nil {
		return err
	}

	if body := r.Body; body != nil && r.ContentLength > 0 {
		typ := r.Header.Get("Content-Type")
		if idx := strings.Index(typ, ";"); idx >= 0 {
			typ = typ[:idx]
		}

		if strings.TrimSpace(typ) == "application/json" {
			if err := json.NewDecoder(body).Decode(object); err != nil {
				return err
			}
		}
	}

	if _, err := govalidator.ValidateStruct(object); err != nil {
		return err
	}

	return nil
}
