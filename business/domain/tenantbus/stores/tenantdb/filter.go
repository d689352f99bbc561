package tenantdb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
)

func applyFilter(filter tenantbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["tenant_id"] = filter.ID.String()
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.Slug != nil {
		data["slug"] = filter.Slug.String()
		wc = append(wc, "slug = :slug")
	}

	if filter.Name != nil {
		data["name"] = fmt.Sprintf("%%%s%%", *filter.Name)
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
