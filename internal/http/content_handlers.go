package httpx

import (
	"context"
	"net/http"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/blog"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/resume"
)

// collection describes one admin-managed entity exposed as a REST
// collection: GET/POST on the base path, GET/PUT/DELETE on base/{id}.
type collection[T, In any] struct {
	base   string
	entity string
	plural string
	list   func(context.Context, listing.Query) (listing.Page[T], error)
	get    func(context.Context, string) (*T, error)
	create func(context.Context, In) (*T, error)
	update func(context.Context, string, In) (*T, error)
	remove func(context.Context, string) error
	// read wraps the public GET routes, e.g. with optionalAuth.
	read func(http.HandlerFunc) http.HandlerFunc
}

func registerCollection[T, In any](r *Router, c collection[T, In]) {
	read := c.read
	if read == nil {
		read = func(h http.HandlerFunc) http.HandlerFunc { return h }
	}
	r.handle("GET "+c.base, read(func(w http.ResponseWriter, req *http.Request) {
		q, err := listing.ParseQuery(req.URL.Query())
		if err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		page, err := c.list(req.Context(), q)
		if err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		writeList(w, c.plural, page.Items, page.Total)
	}))
	r.handle("POST "+c.base, r.admin(c.entity, func(w http.ResponseWriter, req *http.Request) {
		var in In
		if !decodeJSON(w, req, &in) {
			return
		}
		item, err := c.create(req.Context(), in)
		if err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		writeSuccess(w, http.StatusCreated, c.entity, item)
	}))
	r.handle("GET "+c.base+"/{id}", read(func(w http.ResponseWriter, req *http.Request) {
		item, err := c.get(req.Context(), req.PathValue("id"))
		if err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		writeSuccess(w, http.StatusOK, c.entity, item)
	}))
	r.handle("PUT "+c.base+"/{id}", r.admin(c.entity, func(w http.ResponseWriter, req *http.Request) {
		var in In
		if !decodeJSON(w, req, &in) {
			return
		}
		item, err := c.update(req.Context(), req.PathValue("id"), in)
		if err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		writeSuccess(w, http.StatusOK, c.entity, item)
	}))
	r.handle("DELETE "+c.base+"/{id}", r.admin(c.entity, func(w http.ResponseWriter, req *http.Request) {
		if err := c.remove(req.Context(), req.PathValue("id")); err != nil {
			r.fail(w, req, c.entity, err)
			return
		}
		writeMessage(w, http.StatusOK, c.entity+" deleted")
	}))
}

func (r *Router) registerResume() {
	registerCollection(r, collection[domain.Skill, resume.SkillInput]{
		base: "/api/skills", entity: "skill", plural: "skills",
		list: r.resume.ListSkills, get: r.resume.GetSkill,
		create: r.resume.CreateSkill, update: r.resume.UpdateSkill, remove: r.resume.DeleteSkill,
	})
	registerCollection(r, collection[domain.Experience, resume.ExperienceInput]{
		base: "/api/experience", entity: "experience", plural: "experiences",
		list: r.resume.ListExperience, get: r.resume.GetExperience,
		create: r.resume.CreateExperience, update: r.resume.UpdateExperience, remove: r.resume.DeleteExperience,
	})
	registerCollection(r, collection[domain.Education, resume.EducationInput]{
		base: "/api/education", entity: "education", plural: "educations",
		list: r.resume.ListEducation, get: r.resume.GetEducation,
		create: r.resume.CreateEducation, update: r.resume.UpdateEducation, remove: r.resume.DeleteEducation,
	})
	registerCollection(r, collection[domain.Certificate, resume.CertificateInput]{
		base: "/api/certificates", entity: "certificate", plural: "certificates",
		list: r.resume.ListCertificates, get: r.resume.GetCertificate,
		create: r.resume.CreateCertificate, update: r.resume.UpdateCertificate, remove: r.resume.DeleteCertificate,
	})
}

func (r *Router) registerProjects() {
	registerCollection(r, collection[domain.Project, project.Input]{
		base: "/api/projects", entity: "project", plural: "projects",
		list: r.projects.List, get: r.projects.Get,
		create: r.projects.Create, update: r.projects.Update, remove: r.projects.Delete,
	})
	r.handle("GET /api/projects/slug/{slug}", func(w http.ResponseWriter, req *http.Request) {
		p, err := r.projects.GetBySlug(req.Context(), req.PathValue("slug"))
		if err != nil {
			r.fail(w, req, "project", err)
			return
		}
		writeSuccess(w, http.StatusOK, "project", p)
	})
}

// Blog reads depend on the caller: anonymous readers only see published
// posts, so the read routes run under optionalAuth.
func (r *Router) registerBlog() {
	registerCollection(r, collection[domain.Post, blog.Input]{
		base: "/api/blog", entity: "post", plural: "posts",
		list: func(ctx context.Context, q listing.Query) (listing.Page[domain.Post], error) {
			return r.blog.List(ctx, q, viewerFrom(ctx))
		},
		get: func(ctx context.Context, id string) (*domain.Post, error) {
			return r.blog.Get(ctx, id, viewerFrom(ctx))
		},
		create: r.blog.Create, update: r.blog.Update, remove: r.blog.Delete,
		read: r.optionalAuth,
	})
	r.handle("GET /api/blog/slug/{slug}", r.optionalAuth(func(w http.ResponseWriter, req *http.Request) {
		post, err := r.blog.GetBySlug(req.Context(), req.PathValue("slug"), viewerFrom(req.Context()))
		if err != nil {
			r.fail(w, req, "post", err)
			return
		}
		writeSuccess(w, http.StatusOK, "post", post)
	}))
}

func viewerFrom(ctx context.Context) blog.Viewer {
	return blog.Viewer{Admin: isAdmin(ctx)}
}
