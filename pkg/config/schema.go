package config

// Schema is the JSON schema for validating configuration files
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "definitions": {
        "patterns": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
        },
        "options": {
            "type": "object",
            "properties": {
                "archive": {"type": "boolean"},
                "compress": {"type": "boolean"},
                "relative": {"type": "boolean"},
                "delete": {"type": "boolean"},
                "dry_run": {"type": "boolean"},
                "include": {"$ref": "#/definitions/patterns"},
                "exclude": {"$ref": "#/definitions/patterns"},
                "working_dir": {"type": "string"}
            },
            "additionalProperties": false
        }
    },
    "properties": {
        "log_level": {
            "type": "string",
            "enum": ["debug", "info", "warn", "error"]
        },
        "log_format": {
            "type": "string",
            "enum": ["json", "console"]
        },
        "max_concurrent_jobs": {
            "type": "integer",
            "minimum": 1
        },
        "rsync_path": {
            "type": "string",
            "minLength": 1
        },
        "defaults": {"$ref": "#/definitions/options"},
        "connections": {
            "type": "array",
            "minItems": 1,
            "items": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string",
                        "pattern": "^[a-zA-Z0-9_-]+$"
                    },
                    "type": {
                        "type": "string",
                        "enum": ["local", "remote", "akamai"]
                    },
                    "destination_root": {
                        "type": "string",
                        "pattern": "^/"
                    },
                    "host": {"type": "string"},
                    "port": {
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 65535
                    },
                    "user": {"type": "string"},
                    "ssh_key": {"type": "string"},
                    "password": {"type": "string"},
                    "known_hosts": {"type": "string"}
                },
                "required": ["name", "type"],
                "additionalProperties": false
            }
        },
        "jobs": {
            "type": "array",
            "minItems": 1,
            "items": {
                "type": "object",
                "properties": {
                    "name": {
                        "type": "string",
                        "pattern": "^[a-zA-Z0-9_-]+$"
                    },
                    "connection": {"type": "string"},
                    "source": {"type": "string"},
                    "destination": {"type": "string"},
                    "files": {
                        "type": "array",
                        "minItems": 1,
                        "items": {"type": "string", "minLength": 1}
                    },
                    "prepare": {"type": "boolean"},
                    "enabled": {"type": "boolean"},
                    "options": {"$ref": "#/definitions/options"}
                },
                "required": ["name", "connection", "source"],
                "additionalProperties": false
            }
        }
    },
    "required": ["connections", "jobs"]
}`
