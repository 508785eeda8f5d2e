package github

// JSON Schemas for the two validated GitHub payloads. name/bio/description/
// language are nullable in the REST API and stay optional here.

const profileSchema = `{
  "type": "object",
  "required": ["login", "avatar_url", "public_repos", "followers", "following"],
  "properties": {
    "login": {"type": "string"},
    "avatar_url": {"type": "string"},
    "name": {"type": ["string", "null"]},
    "bio": {"type": ["string", "null"]},
    "public_repos": {"type": "integer"},
    "followers": {"type": "integer"},
    "following": {"type": "integer"}
  }
}`

const repoListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "html_url", "stargazers_count", "forks_count", "owner"],
    "properties": {
      "id": {"type": "integer"},
      "name": {"type": "string"},
      "description": {"type": ["string", "null"]},
      "html_url": {"type": "string"},
      "language": {"type": ["string", "null"]},
      "stargazers_count": {"type": "integer"},
      "forks_count": {"type": "integer"},
      "owner": {
        "type": "object",
        "required": ["login"],
        "properties": {"login": {"type": "string"}}
      }
    }
  }
}`
