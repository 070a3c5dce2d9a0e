package stubapp

import (
	"html/template"
	"net/http"
)

const layoutTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quorum · {{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; }
  nav a { margin-right: 1rem; }
  .btn { display: inline-block; padding: .5rem 1rem; border: 1px solid #333;
         border-radius: 4px; background: #fff; cursor: pointer; font-size: 1rem; }
  .btn-primary { background: #2d5bff; color: #fff; border-color: #2d5bff; }
  .form-error { color: #b00020; }
  .server-flash { padding: .5rem; background: #e6f4ea; border: 1px solid #1e8e3e; }
  label { display: block; margin-top: .75rem; }
  input, select { padding: .4rem; font-size: 1rem; }
  [hidden] { display: none !important; }
</style>
</head>
<body>
{{if .Authed}}
<nav>
  <a id="nav-home" href="/home">Home</a>
  <a id="nav-notifications" href="/notifications">Notifications</a>
  <a id="nav-profile" href="/profile">Profile</a>
  <a id="nav-logout" href="/logout">Sign out</a>
</nav>
{{end}}
{{template "content" .}}
</body>
</html>`

const loginTmpl = `{{define "content"}}
<h1>Sign in to Quorum</h1>
{{if .Error}}<p class="form-error" role="alert">{{.Error}}</p>{{end}}
<form method="post" action="/onboarding/Login">
  <label for="login-email">Email</label>
  <input id="login-email" name="email" type="email" autocomplete="username">
  <label for="login-password">Password</label>
  <input id="login-password" name="password" type="password" autocomplete="current-password">
  <p><button id="login-submit" class="btn btn-primary" type="submit">Sign in</button></p>
</form>
<p><a id="sso-login" class="btn" role="button" href="/auth/sso/login">Continue with SSO</a></p>
{{end}}`

const homeTmpl = `{{define "content"}}
<h1>Welcome back, {{.DisplayName}}</h1>
<p><a id="new-meeting" class="btn btn-primary" role="button" href="/meetings/new">New meeting</a></p>
<h2>Your meetings</h2>
<div id="meeting-list" data-state="loading">
  <p class="loading-hint">Loading meetings…</p>
</div>
<script>
(function () {
  var list = document.getElementById('meeting-list');
  fetch('/api/meetings')
    .then(function (resp) { return resp.json(); })
    .then(function (meetings) {
      if (meetings.length === 0) {
        list.innerHTML = '<p class="empty-state">No meetings yet</p>';
      } else {
        var ul = document.createElement('ul');
        meetings.forEach(function (m) {
          var li = document.createElement('li');
          li.className = 'meeting-row';
          li.setAttribute('data-meeting-id', m.id);
          var title = document.createElement('span');
          title.className = 'meeting-title';
          title.textContent = m.title;
          var open = document.createElement('a');
          open.className = 'join-link';
          open.target = '_blank';
          open.href = '/meetings/' + m.id;
          open.textContent = 'Open';
          li.appendChild(title);
          li.appendChild(document.createTextNode(' '));
          li.appendChild(open);
          ul.appendChild(li);
        });
        list.innerHTML = '';
        list.appendChild(ul);
      }
      list.setAttribute('data-state', 'ready');
    });
})();
</script>
{{end}}`

const newMeetingTmpl = `{{define "content"}}
<h1>Schedule a meeting</h1>
<form method="post" action="/meetings/new">
  <label for="meeting-title">Title</label>
  <input id="meeting-title" name="title" type="text">
  <label for="meeting-duration">Duration</label>
  <select id="meeting-duration" name="duration">
    <option value="15 minutes">15 minutes</option>
    <option value="30 minutes" selected>30 minutes</option>
    <option value="60 minutes">60 minutes</option>
  </select>
  <p><button id="create-meeting" class="btn btn-primary" type="submit">Create meeting</button></p>
</form>
{{end}}`

const meetingTmpl = `{{define "content"}}
<h1 class="meeting-title">{{.Meeting.Title}}</h1>
<p class="meeting-duration">{{.Meeting.Duration}}</p>
<button id="join-meeting" class="btn btn-primary" data-state="closed">Join</button>
<div id="meeting-room" hidden>
  <p class="room-banner">You are in the meeting</p>
  <button id="leave-meeting" class="btn">Leave</button>
</div>
<script>
(function () {
  var join = document.getElementById('join-meeting');
  var room = document.getElementById('meeting-room');
  join.addEventListener('click', function () {
    join.setAttribute('data-state', 'open');
    join.hidden = true;
    room.hidden = false;
  });
  document.getElementById('leave-meeting').addEventListener('click', function () {
    join.setAttribute('data-state', 'closed');
    join.hidden = false;
    room.hidden = true;
  });
})();
</script>
{{end}}`

const notificationsTmpl = `{{define "content"}}
<h1>Notifications</h1>
{{if .Notifications}}
<div role="tablist">
  <button class="tab btn" role="tab" data-filter="all" aria-selected="true">All</button>
  <button class="tab btn" role="tab" data-filter="mention" aria-selected="false">Mentions</button>
  <button class="tab btn" role="tab" data-filter="invite" aria-selected="false">Invites</button>
</div>
<ul id="notification-list">
{{range .Notifications}}
  <li class="notification" data-kind="{{.Kind}}">{{.Text}}</li>
{{end}}
</ul>
<button id="mark-all-read" class="btn">Mark all read</button>
<script>
(function () {
  var tabs = document.querySelectorAll('[role="tab"]');
  tabs.forEach(function (tab) {
    tab.addEventListener('click', function () {
      tabs.forEach(function (t) { t.setAttribute('aria-selected', String(t === tab)); });
      var filter = tab.getAttribute('data-filter');
      document.querySelectorAll('li.notification').forEach(function (li) {
        li.hidden = filter !== 'all' && li.getAttribute('data-kind') !== filter;
      });
    });
  });
})();
</script>
{{else}}
<p class="empty-state">You're all caught up</p>
{{end}}
{{end}}`

const profileTmpl = `{{define "content"}}
<h1>Your profile</h1>
{{if .Saved}}<div class="server-flash" role="status">Profile saved</div>{{end}}
<form method="post" action="/profile">
  <label for="display-name">Display name</label>
  <input id="display-name" name="display_name" type="text" value="{{.DisplayName}}">
  <label for="timezone">Timezone</label>
  <select id="timezone" name="timezone">
    {{range .Timezones}}
    <option value="{{.}}" {{if eq . $.Timezone}}selected{{end}}>{{.}}</option>
    {{end}}
  </select>
  <p><button id="save-profile" class="btn btn-primary" type="submit">Save changes</button></p>
</form>
<div id="consent-banner"
     style="position: fixed; left: 0; right: 0; top: 110px; bottom: 0;
            background: rgba(20,20,20,.6); color: #fff; padding: 1rem; z-index: 100;">
  <p>Quorum uses cookies to keep you signed in.</p>
  <button id="accept-cookies" class="btn">Accept</button>
</div>
<script>
document.getElementById('accept-cookies').addEventListener('click', function () {
  document.getElementById('consent-banner').remove();
});
</script>
{{end}}`

var pageTemplates = func() map[string]*template.Template {
	pages := map[string]string{
		"login":         loginTmpl,
		"home":          homeTmpl,
		"new-meeting":   newMeetingTmpl,
		"meeting":       meetingTmpl,
		"notifications": notificationsTmpl,
		"profile":       profileTmpl,
	}
	out := make(map[string]*template.Template, len(pages))
	for name, body := range pages {
		t := template.Must(template.New("layout").Parse(layoutTmpl))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}()

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates[page].Execute(w, data); err != nil {
		log.Error("render page", "page", page, "error", err)
	}
}
