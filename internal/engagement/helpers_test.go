package engagement

import (
	"encoding/json"
	"net/http"
	"time"
)

var timeZero = time.Unix(0, 0)

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
