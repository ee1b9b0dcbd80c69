// Package members exposes the member roster over HTTP: the paginated list
// view, single-member reads, the create/edit/delete mutations, and photo
// uploads. Reads go through the fetch cache; mutations run through a form
// session and invalidate it.
package members

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/memberdesk/memberdesk/internal/cache"
	"github.com/memberdesk/memberdesk/internal/pagination"
	"github.com/memberdesk/memberdesk/internal/respond"
	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
	"github.com/memberdesk/memberdesk/internal/workflow"
)

// Register wires member routes into the provided API router.
func Register(api huma.API, svc memberssvc.Service, store *cache.Store, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-members",
		Method:      http.MethodGet,
		Path:        "/members",
		Summary:     "List members",
		Description: "Returns one page of the member roster with display rows. Use the Link header to navigate between pages.",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		page, err := listPage(ctx, svc, store, input.DefaultPage(), input.DefaultLimit())
		if err != nil {
			return nil, mapServiceError(err)
		}

		data := ListData{
			Data:       toRows(page.Data),
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
		}
		link := pagination.BuildLinkHeader(prefix+"/members", url.Values{}, page.Page, page.TotalPages, input.DefaultLimit())
		return &ListOutput{
			Link: link,
			Body: respond.Success(ctx, data).Body,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-member",
		Method:      http.MethodGet,
		Path:        "/members/{id}",
		Summary:     "Get a member",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *GetInput) (*MemberOutput, error) {
		member, err := getMember(ctx, svc, store, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MemberOutput{Body: respond.Success(ctx, *member).Body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-member",
		Method:        http.MethodPost,
		Path:          "/members",
		Summary:       "Create a member",
		Description:   "Validates the payload and creates the member in the store. The list cache is invalidated on success.",
		Tags:          []string{"Members"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
		session := workflow.NewCreate(svc, store)
		session.SetValues(workflow.Values{
			FirstName:   input.Body.FirstName,
			LastName:    input.Body.LastName,
			DateOfBirth: input.Body.DateOfBirth,
			Sex:         memberssvc.Sex(input.Body.Sex),
			Status:      memberssvc.Status(input.Body.Status),
		})

		result, err := session.Submit(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &CreateOutput{
			Location: prefix + "/members/" + url.PathEscape(result.Member.ID),
			Body:     respond.Success(ctx, *result.Member).Body,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-member",
		Method:      http.MethodPatch,
		Path:        "/members/{id}",
		Summary:     "Update a member",
		Description: "Applies a partial update. At least one field must be supplied; supplied fields follow the creation rules.",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *UpdateInput) (*MemberOutput, error) {
		// Reject empty and invalid payloads before touching the store.
		if err := memberssvc.ValidateUpdate(toUpdateInput(input.Body)); err != nil {
			return nil, mapServiceError(err)
		}

		existing, err := svc.GetMember(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		session := workflow.NewEdit(svc, store, *existing)
		session.SetValues(overlayValues(session.Values(), input.Body))
		if !session.Dirty() {
			// Every supplied field already matches the record.
			return &MemberOutput{Body: respond.Success(ctx, *existing).Body}, nil
		}

		result, err := session.Submit(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MemberOutput{Body: respond.Success(ctx, *result.Member).Body}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-member",
		Method:        http.MethodDelete,
		Path:          "/members/{id}",
		Summary:       "Delete a member",
		Description:   "Deletes the member after the confirmation sequence. The member and list caches are invalidated on success.",
		Tags:          []string{"Members"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteInput) (*struct{}, error) {
		existing, err := svc.GetMember(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		session := workflow.NewEdit(svc, store, *existing)
		if err := session.RequestDelete(); err != nil {
			return nil, mapServiceError(err)
		}
		if _, err := session.ConfirmDelete(ctx); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "upload-member-photo",
		Method:        http.MethodPut,
		Path:          "/members/{id}/photo",
		Summary:       "Replace a member's photo",
		Description:   "Uploads a photo as multipart form data under the \"file\" field. The store enforces the size limit.",
		Tags:          []string{"Members"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *PhotoInput) (*struct{}, error) {
		existing, err := svc.GetMember(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		formData := input.RawBody.Data()
		if !formData.File.IsSet {
			return nil, huma.Error422UnprocessableEntity("photo file is required")
		}

		session := workflow.NewEdit(svc, store, *existing)
		if err := session.UploadPhoto(ctx, formData.File, formData.File.ContentType); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

// listPage serves the roster from the fetch cache, filling it on miss. Each
// page/limit pair is its own cache variant.
func listPage(ctx context.Context, svc memberssvc.Service, store *cache.Store, page, limit int) (*pagination.Page[memberssvc.Member], error) {
	variant := cache.ListVariant(page, limit)
	if cached, ok := store.Get(cache.MemberListKey(), variant); ok {
		if result, ok := cached.(pagination.Page[memberssvc.Member]); ok {
			return &result, nil
		}
	}

	result, err := svc.ListMembers(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	store.Put(cache.MemberListKey(), variant, *result)
	return result, nil
}

func getMember(ctx context.Context, svc memberssvc.Service, store *cache.Store, id string) (*memberssvc.Member, error) {
	if cached, ok := store.Get(cache.MemberKey(id), ""); ok {
		if member, ok := cached.(memberssvc.Member); ok {
			return &member, nil
		}
	}

	member, err := svc.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	store.Put(cache.MemberKey(id), "", *member)
	return member, nil
}

func toUpdateInput(body UpdateBody) memberssvc.UpdateMemberInput {
	var in memberssvc.UpdateMemberInput
	in.FirstName = body.FirstName
	in.LastName = body.LastName
	in.DateOfBirth = body.DateOfBirth
	if body.Sex != nil {
		v := memberssvc.Sex(*body.Sex)
		in.Sex = &v
	}
	if body.Status != nil {
		v := memberssvc.Status(*body.Status)
		in.Status = &v
	}
	return in
}

func overlayValues(base workflow.Values, body UpdateBody) workflow.Values {
	if body.FirstName != nil {
		base.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		base.LastName = *body.LastName
	}
	if body.DateOfBirth != nil {
		base.DateOfBirth = *body.DateOfBirth
	}
	if body.Sex != nil {
		base.Sex = memberssvc.Sex(*body.Sex)
	}
	if body.Status != nil {
		base.Status = memberssvc.Status(*body.Status)
	}
	return base
}

func mapServiceError(err error) error {
	var verr *memberssvc.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			location := "body"
			if f.Field != "" {
				location = "body." + f.Field
			}
			details = append(details, &huma.ErrorDetail{Location: location, Message: string(f.Reason)})
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case errors.Is(err, memberssvc.ErrNotFound):
		return huma.Error404NotFound("member not found")
	case errors.Is(err, memberssvc.ErrTransport):
		return huma.Error502BadGateway("member store unavailable")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
