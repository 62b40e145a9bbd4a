package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

// jsonTemplate недельный шаблон в колонке JSONB
type jsonTemplate domain.WeeklyTemplate

func (t jsonTemplate) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(domain.WeeklyTemplate(t))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeTemplate, err)
	}
	return data, nil
}

func (t *jsonTemplate) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*t = jsonTemplate{}
		return nil
	default:
		return fmt.Errorf("unsupported template type %T", src)
	}

	var template domain.WeeklyTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return err
	}
	if template == nil {
		template = domain.WeeklyTemplate{}
	}
	*t = jsonTemplate(template)
	return nil
}
