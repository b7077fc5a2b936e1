package skolplattformen

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// fetches a page and parses it, returning the document together with
// the url it finally landed on after redirects
func (c *Client) getDoc(ctx context.Context, ref string) (*goquery.Document, *url.URL, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(ref)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, nil, err
	}
	return doc, res.RawResponse.Request.URL, nil
}

func (c *Client) postForm(ctx context.Context, ref string, fields map[string]string) (*goquery.Document, *url.URL, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(ref)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, nil, err
	}
	return doc, res.RawResponse.Request.URL, nil
}

// collects every hidden input of a form, the moral equivalent of the
// browser submitting whatever state the page planted
func hiddenFields(form *goquery.Selection) map[string]string {
	fields := map[string]string{}
	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})
	return fields
}

func resolveRef(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func findLinkByText(doc *goquery.Document, text string) string {
	href := ""
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), text) {
			href = a.AttrOr("href", "")
			return false
		}
		return true
	})
	return href
}

// Login performs the scripted SSO sequence: email entry, realm
// selection, the username/password form, and the "don't stay signed
// in" interstitial. There is no decision logic here, each step just
// submits what the previous page asked for.
func (c *Client) Login(ctx context.Context, email, username, password string) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	slog.InfoContext(ctx, "logging in", "username", username)

	doc, loc, err := c.getDoc(ctx, "/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch portal start page")
		return err
	}

	// email form
	emailInput := doc.Find("input[type=email]").First()
	form := emailInput.Closest("form")
	if form.Length() == 0 {
		span.SetStatus(codes.Error, "no email form on start page")
		return fmt.Errorf("%w: could not find the email form", ErrAuthenticationFailed)
	}
	fields := hiddenFields(form)
	fields[emailInput.AttrOr("name", "loginfmt")] = email
	action, err := resolveRef(loc, form.AttrOr("action", "/"))
	if err != nil {
		return err
	}
	doc, loc, err = c.postForm(ctx, action, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit email form")
		return err
	}

	// realm selection, students log in through the "Elever" entry
	href := findLinkByText(doc, "Elever")
	if href == "" {
		span.SetStatus(codes.Error, "no student realm link")
		return fmt.Errorf("%w: could not find the student realm link", ErrAuthenticationFailed)
	}
	ref, err := resolveRef(loc, href)
	if err != nil {
		return err
	}
	doc, loc, err = c.getDoc(ctx, ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open student realm")
		return err
	}

	href = findLinkByText(doc, "Logga in med användarnamn och lösenord")
	if href == "" {
		span.SetStatus(codes.Error, "no password login link")
		return fmt.Errorf("%w: could not find the password login link", ErrAuthenticationFailed)
	}
	ref, err = resolveRef(loc, href)
	if err != nil {
		return err
	}
	doc, loc, err = c.getDoc(ctx, ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open password login page")
		return err
	}

	// username/password form
	userInput := doc.Find("input[name=user]").First()
	form = userInput.Closest("form")
	if form.Length() == 0 {
		span.SetStatus(codes.Error, "no credential form")
		return fmt.Errorf("%w: could not find the credential form", ErrAuthenticationFailed)
	}
	fields = hiddenFields(form)
	fields["user"] = username
	fields["password"] = password
	action, err = resolveRef(loc, form.AttrOr("action", "/"))
	if err != nil {
		return err
	}
	doc, loc, err = c.postForm(ctx, action, fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit credentials")
		return err
	}

	// "don't stay signed in"
	back := doc.Find("input#idBtn_Back").First()
	if back.Length() > 0 {
		form = back.Closest("form")
		fields = hiddenFields(form)
		if name := back.AttrOr("name", ""); name != "" {
			fields[name] = back.AttrOr("value", "")
		}
		action, err = resolveRef(loc, form.AttrOr("action", "/"))
		if err != nil {
			return err
		}
		doc, _, err = c.postForm(ctx, action, fields)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to dismiss stay-signed-in prompt")
			return err
		}
	}

	if doc.Find("a[data-navigationcomponent=SiteHeader]").Length() == 0 {
		span.SetStatus(codes.Error, ErrAuthenticationFailed.Error())
		return ErrAuthenticationFailed
	}

	slog.InfoContext(ctx, "login successful")
	return nil
}
